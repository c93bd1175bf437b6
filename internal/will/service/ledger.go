package service

import (
	"context"
	"strconv"
	"time"

	"testament/internal/will/models"
	id "testament/pkg/domain"
	"testament/pkg/platform/audit"
)

// SetResidualBeneficiary designates or replaces the residual beneficiary.
func (s *Service) SetResidualBeneficiary(ctx context.Context, owner, residual id.Identity) (*models.Will, error) {
	w, err := s.updateWill(ctx, owner, ownerOrEditor(ctx),
		func(w *models.Will, now time.Time) error { return w.SetResidual(residual, now) },
		auditRecord{event: audit.EventResidualSet, subject: residual.String()},
	)
	if err != nil {
		return nil, err
	}
	s.incrementLedgerMutation("set_residual")
	return w, nil
}

// AddBeneficiaries inserts or overwrites shares, funding them from the
// residual. The batch is applied in order and fails as a whole.
func (s *Service) AddBeneficiaries(ctx context.Context, owner id.Identity, shares []models.Share) (*models.Will, error) {
	w, err := s.updateWill(ctx, owner, ownerOrEditor(ctx),
		func(w *models.Will, now time.Time) error { return w.AddBeneficiaries(shares, now) },
		auditRecord{event: audit.EventBeneficiariesAdded, subject: shareList(shares)},
	)
	if err != nil {
		return nil, err
	}
	s.incrementLedgerMutation("add_beneficiaries")
	return w, nil
}

func (s *Service) UpdateAllocations(ctx context.Context, owner id.Identity, shares []models.Share) (*models.Will, error) {
	w, err := s.updateWill(ctx, owner, ownerOrEditor(ctx),
		func(w *models.Will, now time.Time) error { return w.UpdateAllocations(shares, now) },
		auditRecord{event: audit.EventAllocationsUpdated, subject: shareList(shares)},
	)
	if err != nil {
		return nil, err
	}
	s.incrementLedgerMutation("update_allocations")
	return w, nil
}

func (s *Service) RemoveBeneficiaries(ctx context.Context, owner id.Identity, beneficiaries []id.Identity) (*models.Will, error) {
	w, err := s.updateWill(ctx, owner, ownerOrEditor(ctx),
		func(w *models.Will, now time.Time) error { return w.RemoveBeneficiaries(beneficiaries, now) },
		auditRecord{event: audit.EventBeneficiariesRemoved, subject: identityList(beneficiaries)},
	)
	if err != nil {
		return nil, err
	}
	s.incrementLedgerMutation("remove_beneficiaries")
	return w, nil
}

// GetAllocationPercentage returns beneficiary's share of the digital estate,
// 0 when absent.
func (s *Service) GetAllocationPercentage(ctx context.Context, owner, beneficiary id.Identity) (int, error) {
	w, err := s.wills.FindByOwner(ctx, owner)
	if err != nil {
		return 0, wrapWillErr(err, "failed to load will")
	}
	return w.AllocationOf(beneficiary), nil
}

func shareList(shares []models.Share) string {
	out := make([]byte, 0, len(shares)*48)
	for i, sh := range shares {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, string(sh.Beneficiary)...)
		out = append(out, '=')
		out = strconv.AppendInt(out, int64(sh.Percent), 10)
	}
	return string(out)
}

func formatAmount(amount int64) string {
	return strconv.FormatInt(amount, 10)
}
