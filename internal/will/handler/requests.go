package handler

import (
	"strings"

	"testament/internal/will/models"
	"testament/internal/will/service"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
)

// CreateWillRequest registers the caller's will.
type CreateWillRequest struct {
	NationalID string `json:"national_id"`

	nationalID id.NationalID
}

func (r *CreateWillRequest) Validate() error {
	nid, err := id.ParseNationalID(r.NationalID)
	if err != nil {
		return err
	}
	r.nationalID = nid
	return nil
}

// SetResidualRequest names the new residual beneficiary.
type SetResidualRequest struct {
	Beneficiary string `json:"beneficiary"`

	beneficiary id.Identity
}

func (r *SetResidualRequest) Validate() error {
	b, err := id.ParseIdentity(r.Beneficiary)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "invalid residual beneficiary")
	}
	r.beneficiary = b
	return nil
}

// SharesRequest carries parallel beneficiary and percentage lists. It is the
// body of add, update and asset split replacement.
type SharesRequest struct {
	Beneficiaries []string `json:"beneficiaries"`
	Shares        []int    `json:"shares"`

	shares []models.Share
}

func (r *SharesRequest) Validate() error {
	shares, err := parseShares(r.Beneficiaries, r.Shares)
	if err != nil {
		return err
	}
	r.shares = shares
	return nil
}

// RemoveBeneficiariesRequest lists beneficiaries whose shares return to the
// residual.
type RemoveBeneficiariesRequest struct {
	Beneficiaries []string `json:"beneficiaries"`

	beneficiaries []id.Identity
}

func (r *RemoveBeneficiariesRequest) Validate() error {
	if len(r.Beneficiaries) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one beneficiary is required")
	}
	ids, err := parseIdentities(r.Beneficiaries)
	if err != nil {
		return err
	}
	r.beneficiaries = ids
	return nil
}

type FundRequest struct {
	Amount int64 `json:"amount"`
}

func (r *FundRequest) Validate() error {
	if r.Amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}
	return nil
}

// CreateAssetRequest registers a physical asset with its split.
type CreateAssetRequest struct {
	Description      string   `json:"description"`
	Value            int64    `json:"value"`
	CertificationURL string   `json:"certification_url"`
	Beneficiaries    []string `json:"beneficiaries"`
	Shares           []int    `json:"shares"`

	input service.AssetInput
}

func (r *CreateAssetRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return dErrors.New(dErrors.CodeValidation, "description is required")
	}
	if r.Value < 0 {
		return dErrors.New(dErrors.CodeValidation, "value cannot be negative")
	}
	shares, err := parseShares(r.Beneficiaries, r.Shares)
	if err != nil {
		return err
	}
	r.input = service.AssetInput{
		Description:      r.Description,
		Value:            r.Value,
		CertificationURL: r.CertificationURL,
		Shares:           shares,
	}
	return nil
}

func parseShares(beneficiaries []string, shares []int) ([]models.Share, error) {
	if len(beneficiaries) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one beneficiary is required")
	}
	ids, err := parseIdentities(beneficiaries)
	if err != nil {
		return nil, err
	}
	return models.PairShares(ids, shares)
}

func parseIdentities(values []string) ([]id.Identity, error) {
	out := make([]id.Identity, len(values))
	for i, v := range values {
		parsed, err := id.ParseIdentity(v)
		if err != nil {
			return nil, dErrors.Newf(dErrors.CodeValidation, "invalid beneficiary address %q", v)
		}
		out[i] = parsed
	}
	return out, nil
}
