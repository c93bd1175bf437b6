package models

import (
	"slices"
	"time"

	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
)

// FullAllocation is the percentage every ledger sums to once a residual
// beneficiary exists.
const FullAllocation = 100

// Share is one beneficiary's percentage of an estate or asset.
type Share struct {
	Beneficiary id.Identity `json:"beneficiary"`
	Percent     int         `json:"percent"`
}

// Will is the aggregate root for one owner's estate plan.
//
// Invariants:
//   - Owner and NationalID are immutable after construction
//   - Beneficiaries has unique identities, each share in [0,100]
//   - Σ Beneficiaries == 100 once Residual is set, ≤ 100 before
//   - Residual, when set, is present in Beneficiaries and holds
//     100 minus the sum of every other share
//   - DigitalAssets is never negative
//
// Ledger methods (SetResidual, AddBeneficiaries, UpdateAllocations,
// RemoveBeneficiaries) are all-or-nothing: they compute the next ledger on a
// copy and only commit it when every entry validates.
type Will struct {
	Owner         id.Identity   `json:"owner"`
	NationalID    id.NationalID `json:"national_id"`
	Residual      id.Identity   `json:"residual_beneficiary,omitempty"`
	Beneficiaries []Share       `json:"beneficiaries"`
	DigitalAssets int64         `json:"digital_assets"`
	Editors       []id.Identity `json:"editors"`
	Viewers       []id.Identity `json:"viewers"`
	State         State         `json:"state"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewWill constructs a will in InCreation with an empty ledger.
func NewWill(owner id.Identity, nationalID id.NationalID, now time.Time) (*Will, error) {
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "owner identity is required")
	}
	if nationalID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "national id is required")
	}
	return &Will{
		Owner:         owner,
		NationalID:    nationalID,
		Beneficiaries: []Share{},
		Editors:       []id.Identity{},
		Viewers:       []id.Identity{},
		State:         StateInCreation,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Clone returns a deep copy so stores never hand out shared slices.
func (w *Will) Clone() *Will {
	if w == nil {
		return nil
	}
	c := *w
	c.Beneficiaries = slices.Clone(w.Beneficiaries)
	c.Editors = slices.Clone(w.Editors)
	c.Viewers = slices.Clone(w.Viewers)
	return &c
}

// -----------------------------------------------------------------------------
// Roles
// -----------------------------------------------------------------------------

func (w *Will) IsOwner(caller id.Identity) bool {
	return !caller.IsZero() && caller == w.Owner
}

func (w *Will) IsEditor(caller id.Identity) bool {
	return slices.Contains(w.Editors, caller)
}

func (w *Will) IsViewer(caller id.Identity) bool {
	return slices.Contains(w.Viewers, caller)
}

// IsBeneficiary reports whether caller holds a digital share, residual included.
func (w *Will) IsBeneficiary(caller id.Identity) bool {
	_, ok := w.shareIndex(caller)
	return ok
}

// CanEdit reports whether caller may mutate the ledger.
func (w *Will) CanEdit(caller id.Identity) bool {
	return w.IsOwner(caller) || w.IsEditor(caller)
}

// -----------------------------------------------------------------------------
// Ledger reads
// -----------------------------------------------------------------------------

// AllocationOf returns the caller's share, or 0 when absent.
func (w *Will) AllocationOf(beneficiary id.Identity) int {
	if i, ok := w.shareIndex(beneficiary); ok {
		return w.Beneficiaries[i].Percent
	}
	return 0
}

// TotalAllocated sums every share including the residual's.
func (w *Will) TotalAllocated() int {
	total := 0
	for _, s := range w.Beneficiaries {
		total += s.Percent
	}
	return total
}

// NamedBeneficiaries returns the non-residual shares in ledger order.
func (w *Will) NamedBeneficiaries() []Share {
	out := make([]Share, 0, len(w.Beneficiaries))
	for _, s := range w.Beneficiaries {
		if s.Beneficiary != w.Residual {
			out = append(out, s)
		}
	}
	return out
}

func (w *Will) shareIndex(beneficiary id.Identity) (int, bool) {
	i := slices.IndexFunc(w.Beneficiaries, func(s Share) bool { return s.Beneficiary == beneficiary })
	return i, i >= 0
}

// -----------------------------------------------------------------------------
// Ledger mutations
// -----------------------------------------------------------------------------

// CanEditLedger checks the lifecycle gate shared by every ledger mutation.
func (w *Will) CanEditLedger() error {
	if !w.State.AcceptsEdits() {
		return dErrors.New(dErrors.CodeInvalidState, "will is closed")
	}
	return nil
}

// SetResidual designates the residual beneficiary.
//
// With no residual yet, next receives 100 minus every other share. When a
// different residual exists, its whole share moves to next (merging with any
// share next already holds) and the old entry is removed. Setting the same
// residual again changes nothing.
func (w *Will) SetResidual(next id.Identity, now time.Time) error {
	if err := w.CanEditLedger(); err != nil {
		return err
	}
	if next.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "invalid residual beneficiary")
	}
	if next == w.Residual {
		return nil
	}

	ledger := slices.Clone(w.Beneficiaries)
	if w.Residual == "" {
		others := 0
		for _, s := range ledger {
			if s.Beneficiary != next {
				others += s.Percent
			}
		}
		if others > FullAllocation {
			return dErrors.New(dErrors.CodeAllocationExceeded, "Total allocation exceeds 100%")
		}
		ledger = upsertShare(ledger, next, FullAllocation-others)
	} else {
		oldIdx := slices.IndexFunc(ledger, func(s Share) bool { return s.Beneficiary == w.Residual })
		moved := 0
		if oldIdx >= 0 {
			moved = ledger[oldIdx].Percent
			ledger = slices.Delete(ledger, oldIdx, oldIdx+1)
		}
		held := 0
		if i := slices.IndexFunc(ledger, func(s Share) bool { return s.Beneficiary == next }); i >= 0 {
			held = ledger[i].Percent
		}
		ledger = upsertShare(ledger, next, held+moved)
	}

	w.Beneficiaries = ledger
	w.Residual = next
	w.UpdatedAt = now
	return nil
}

// AddBeneficiaries inserts or overwrites shares in input order, funding each
// from the residual's running balance.
//
// Overwriting an existing beneficiary first returns its previous share to the
// residual, so a repeated identity ends with the last share given and the
// ledger still sums to 100. An entry naming the residual only has to fit
// beside the other shares; the residual keeps 100 minus the others.
func (w *Will) AddBeneficiaries(shares []Share, now time.Time) error {
	if err := w.CanEditLedger(); err != nil {
		return err
	}
	if w.Residual == "" {
		return dErrors.New(dErrors.CodeResidualNotSet, "Residual beneficiary not set")
	}
	if err := validateShares(shares); err != nil {
		return err
	}

	ledger := slices.Clone(w.Beneficiaries)
	for _, s := range shares {
		if s.Beneficiary == w.Residual {
			if err := w.checkResidualEntry(ledger, s); err != nil {
				return err
			}
			continue
		}
		residual := shareOf(ledger, w.Residual)
		previous := shareOf(ledger, s.Beneficiary)
		balance := residual + previous - s.Percent
		if balance < 0 {
			return dErrors.New(dErrors.CodeAllocationExceeded, "Total allocation exceeds 100%")
		}
		ledger = upsertShare(ledger, s.Beneficiary, s.Percent)
		ledger = upsertShare(ledger, w.Residual, balance)
	}

	w.Beneficiaries = ledger
	w.UpdatedAt = now
	return nil
}

// UpdateAllocations sets new shares for existing beneficiaries. The residual
// absorbs each difference; the batch fails as a whole if the residual would
// go negative.
func (w *Will) UpdateAllocations(shares []Share, now time.Time) error {
	if err := w.CanEditLedger(); err != nil {
		return err
	}
	if w.Residual == "" {
		return dErrors.New(dErrors.CodeResidualNotSet, "Residual beneficiary not set")
	}
	if err := validateShares(shares); err != nil {
		return err
	}

	ledger := slices.Clone(w.Beneficiaries)
	for _, s := range shares {
		if s.Beneficiary == w.Residual {
			if err := w.checkResidualEntry(ledger, s); err != nil {
				return err
			}
			continue
		}
		i := slices.IndexFunc(ledger, func(e Share) bool { return e.Beneficiary == s.Beneficiary })
		if i < 0 {
			return dErrors.Newf(dErrors.CodeNotFound, "beneficiary %s not found", s.Beneficiary)
		}
		balance := shareOf(ledger, w.Residual) - (s.Percent - ledger[i].Percent)
		if balance < 0 {
			return dErrors.New(dErrors.CodeAllocationExceeded, "Total allocation exceeds 100%")
		}
		ledger[i].Percent = s.Percent
		ledger = upsertShare(ledger, w.Residual, balance)
	}

	w.Beneficiaries = ledger
	w.UpdatedAt = now
	return nil
}

// checkResidualEntry accepts a share naming the residual when it fits beside
// every other share in ledger.
func (w *Will) checkResidualEntry(ledger []Share, s Share) error {
	others := 0
	for _, e := range ledger {
		if e.Beneficiary != w.Residual {
			others += e.Percent
		}
	}
	if others+s.Percent > FullAllocation {
		return dErrors.New(dErrors.CodeAllocationExceeded, "Total allocation exceeds 100%")
	}
	return nil
}

// RemoveBeneficiaries deletes shares and returns them to the residual.
// The residual itself can only be replaced via SetResidual.
func (w *Will) RemoveBeneficiaries(beneficiaries []id.Identity, now time.Time) error {
	if err := w.CanEditLedger(); err != nil {
		return err
	}
	if len(beneficiaries) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one beneficiary is required")
	}

	ledger := slices.Clone(w.Beneficiaries)
	for _, b := range beneficiaries {
		if w.Residual != "" && b == w.Residual {
			return dErrors.New(dErrors.CodeResidualRemoval, "Cannot remove the residual beneficiary")
		}
		i := slices.IndexFunc(ledger, func(e Share) bool { return e.Beneficiary == b })
		if i < 0 {
			return dErrors.Newf(dErrors.CodeNotFound, "beneficiary %s not found", b)
		}
		released := ledger[i].Percent
		ledger = slices.Delete(ledger, i, i+1)
		if w.Residual != "" {
			ledger = upsertShare(ledger, w.Residual, shareOf(ledger, w.Residual)+released)
		}
	}

	w.Beneficiaries = ledger
	w.UpdatedAt = now
	return nil
}

// -----------------------------------------------------------------------------
// Editors and viewers
// -----------------------------------------------------------------------------

func (w *Will) AddEditor(editor id.Identity, now time.Time) error {
	if editor.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "Invalid editor address")
	}
	if w.IsEditor(editor) {
		return dErrors.New(dErrors.CodeConflict, "Editor already exists")
	}
	w.Editors = append(w.Editors, editor)
	w.UpdatedAt = now
	return nil
}

func (w *Will) RemoveEditor(editor id.Identity, now time.Time) error {
	i := slices.Index(w.Editors, editor)
	if i < 0 {
		return dErrors.New(dErrors.CodeNotFound, "Editor not found")
	}
	w.Editors = slices.Delete(w.Editors, i, i+1)
	w.UpdatedAt = now
	return nil
}

func (w *Will) AddViewer(viewer id.Identity, now time.Time) error {
	if viewer.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "Invalid viewer address")
	}
	if w.IsViewer(viewer) {
		return dErrors.New(dErrors.CodeConflict, "Viewer already exists")
	}
	w.Viewers = append(w.Viewers, viewer)
	w.UpdatedAt = now
	return nil
}

func (w *Will) RemoveViewer(viewer id.Identity, now time.Time) error {
	i := slices.Index(w.Viewers, viewer)
	if i < 0 {
		return dErrors.New(dErrors.CodeNotFound, "Viewer not found")
	}
	w.Viewers = slices.Delete(w.Viewers, i, i+1)
	w.UpdatedAt = now
	return nil
}

// -----------------------------------------------------------------------------
// Funds
// -----------------------------------------------------------------------------

// Fund credits the digital balance.
func (w *Will) Fund(amount int64, now time.Time) error {
	if amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "fund amount must be positive")
	}
	if w.State.IsTerminal() {
		return dErrors.New(dErrors.CodeInvalidState, "will is closed")
	}
	if w.DigitalAssets > maxBalance-amount {
		return dErrors.New(dErrors.CodeValidation, "fund amount overflows balance")
	}
	w.DigitalAssets += amount
	w.UpdatedAt = now
	return nil
}

const maxBalance = int64(^uint64(0) >> 1)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func validateShares(shares []Share) error {
	if len(shares) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one beneficiary is required")
	}
	for _, s := range shares {
		if s.Beneficiary.IsZero() {
			return dErrors.New(dErrors.CodeValidation, "invalid beneficiary address")
		}
		if s.Percent < 0 || s.Percent > FullAllocation {
			return dErrors.New(dErrors.CodeValidation, "share must be between 0 and 100")
		}
	}
	return nil
}

func shareOf(ledger []Share, beneficiary id.Identity) int {
	for _, s := range ledger {
		if s.Beneficiary == beneficiary {
			return s.Percent
		}
	}
	return 0
}

// upsertShare overwrites an existing entry in place or appends a new one,
// preserving ledger order.
func upsertShare(ledger []Share, beneficiary id.Identity, percent int) []Share {
	for i := range ledger {
		if ledger[i].Beneficiary == beneficiary {
			ledger[i].Percent = percent
			return ledger
		}
	}
	return append(ledger, Share{Beneficiary: beneficiary, Percent: percent})
}

// PairShares zips parallel identity and percentage lists.
func PairShares(beneficiaries []id.Identity, percents []int) ([]Share, error) {
	if len(beneficiaries) != len(percents) {
		return nil, dErrors.New(dErrors.CodeValidation, "beneficiaries and shares must have the same length")
	}
	out := make([]Share, len(beneficiaries))
	for i := range beneficiaries {
		out[i] = Share{Beneficiary: beneficiaries[i], Percent: percents[i]}
	}
	return out, nil
}
