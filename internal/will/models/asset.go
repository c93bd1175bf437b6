package models

import (
	"slices"
	"strings"
	"time"

	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
)

// PhysicalAsset is a discretely valued, non-fungible asset with its own
// beneficiary split, independent of the digital ledger.
//
// Invariants:
//   - Beneficiaries has unique identities and sums to exactly 100
//   - Distributed flips to true once and Proof is written exactly then
type PhysicalAsset struct {
	ID               id.AssetID   `json:"id"`
	Owner            id.Identity  `json:"owner"`
	Description      string       `json:"description"`
	Value            int64        `json:"value"`
	CertificationURL string       `json:"certification_url"`
	Beneficiaries    []Share      `json:"beneficiaries"`
	Distributed      bool         `json:"distributed"`
	Proof            []ProofEntry `json:"distribution_proof,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	DistributedAt    *time.Time   `json:"distributed_at,omitempty"`
}

// ProofEntry records the title share minted to one beneficiary.
type ProofEntry struct {
	Beneficiary id.Identity `json:"beneficiary"`
	TokenID     uint64      `json:"token_id"`
	Percent     int         `json:"percent"`
}

// NewPhysicalAsset validates and constructs an undistributed asset. The id is
// assigned by the store.
func NewPhysicalAsset(owner id.Identity, description string, value int64, certificationURL string, shares []Share, now time.Time) (*PhysicalAsset, error) {
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "owner identity is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "description is required")
	}
	if value < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "value cannot be negative")
	}
	if err := ValidateAssetShares(shares); err != nil {
		return nil, err
	}
	return &PhysicalAsset{
		Owner:            owner,
		Description:      description,
		Value:            value,
		CertificationURL: strings.TrimSpace(certificationURL),
		Beneficiaries:    slices.Clone(shares),
		CreatedAt:        now,
	}, nil
}

// ValidateAssetShares requires unique beneficiaries summing to exactly 100.
func ValidateAssetShares(shares []Share) error {
	if err := validateShares(shares); err != nil {
		return err
	}
	seen := make(map[id.Identity]struct{}, len(shares))
	total := 0
	for _, s := range shares {
		if _, dup := seen[s.Beneficiary]; dup {
			return dErrors.Newf(dErrors.CodeValidation, "duplicate beneficiary %s", s.Beneficiary)
		}
		seen[s.Beneficiary] = struct{}{}
		total += s.Percent
	}
	if total != FullAllocation {
		return dErrors.New(dErrors.CodeAllocationExceeded, "Total allocation must equal 100%")
	}
	return nil
}

func (a *PhysicalAsset) Clone() *PhysicalAsset {
	if a == nil {
		return nil
	}
	c := *a
	c.Beneficiaries = slices.Clone(a.Beneficiaries)
	c.Proof = slices.Clone(a.Proof)
	if a.DistributedAt != nil {
		t := *a.DistributedAt
		c.DistributedAt = &t
	}
	return &c
}

// CanReplaceBeneficiaries checks an asset split may still change.
func (a *PhysicalAsset) CanReplaceBeneficiaries(shares []Share) error {
	if a.Distributed {
		return dErrors.New(dErrors.CodeInvalidState, "asset already distributed")
	}
	return ValidateAssetShares(shares)
}

// ApplyReplaceBeneficiaries swaps the split. Call CanReplaceBeneficiaries first.
func (a *PhysicalAsset) ApplyReplaceBeneficiaries(shares []Share) {
	a.Beneficiaries = slices.Clone(shares)
}

// CanDistribute checks the asset has not been distributed yet.
func (a *PhysicalAsset) CanDistribute() error {
	if a.Distributed {
		return dErrors.New(dErrors.CodeInvalidState, "asset already distributed")
	}
	return nil
}

// ApplyDistribution writes one proof entry per beneficiary using the minted
// token ids, in split order. len(tokenIDs) must equal len(Beneficiaries).
func (a *PhysicalAsset) ApplyDistribution(tokenIDs []uint64, now time.Time) {
	proof := make([]ProofEntry, len(a.Beneficiaries))
	for i, s := range a.Beneficiaries {
		proof[i] = ProofEntry{Beneficiary: s.Beneficiary, TokenID: tokenIDs[i], Percent: s.Percent}
	}
	a.Proof = proof
	a.Distributed = true
	a.DistributedAt = &now
}

// DistributionProof is the per-asset row returned to owners and beneficiaries.
// Undistributed assets carry empty arrays.
type DistributionProof struct {
	AssetID       id.AssetID    `json:"asset_id"`
	Executed      bool          `json:"executed"`
	Beneficiaries []id.Identity `json:"beneficiaries"`
	TokenIDs      []uint64      `json:"token_ids"`
	Shares        []int         `json:"shares"`
}

// ProofRow flattens the asset's proof into parallel arrays.
func (a *PhysicalAsset) ProofRow() DistributionProof {
	row := DistributionProof{
		AssetID:       a.ID,
		Executed:      a.Distributed,
		Beneficiaries: []id.Identity{},
		TokenIDs:      []uint64{},
		Shares:        []int{},
	}
	for _, p := range a.Proof {
		row.Beneficiaries = append(row.Beneficiaries, p.Beneficiary)
		row.TokenIDs = append(row.TokenIDs, p.TokenID)
		row.Shares = append(row.Shares, p.Percent)
	}
	return row
}
