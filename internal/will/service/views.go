package service

import (
	"context"
	"slices"

	"testament/internal/will/models"
	id "testament/pkg/domain"
	"testament/pkg/requestcontext"
)

// ViewWill renders the report for the owner and editors.
func (s *Service) ViewWill(ctx context.Context, owner id.Identity) (models.Report, error) {
	w, assets, err := s.loadEstate(ctx, owner)
	if err != nil {
		return models.Report{}, err
	}
	caller := requestcontext.Caller(ctx)
	if !requestcontext.IsOperator(ctx) && !w.CanEdit(caller) {
		return models.Report{}, errNotAuthorized
	}
	return models.NewReport(w, assets), nil
}

// ViewWillForBeneficiaries renders the report for viewers. While the owner
// is alive only the owner and viewers may read it; afterwards every
// beneficiary of the estate may too.
func (s *Service) ViewWillForBeneficiaries(ctx context.Context, owner id.Identity) (models.Report, error) {
	w, assets, err := s.loadEstate(ctx, owner)
	if err != nil {
		return models.Report{}, err
	}
	caller := requestcontext.Caller(ctx)
	allowed := requestcontext.IsOperator(ctx) || w.IsOwner(caller) || w.IsViewer(caller)
	if !allowed && w.State != models.StateInCreation {
		allowed = isEstateBeneficiary(w, assets, caller)
	}
	if !allowed {
		return models.Report{}, errNotAuthorized
	}
	return models.NewReport(w, assets), nil
}

// ViewAllAssetDistributionProofs returns one row per asset ever created for
// owner, with empty arrays for undistributed assets.
func (s *Service) ViewAllAssetDistributionProofs(ctx context.Context, owner id.Identity) ([]models.DistributionProof, error) {
	w, assets, err := s.loadEstate(ctx, owner)
	if err != nil {
		return nil, err
	}
	caller := requestcontext.Caller(ctx)
	if !requestcontext.IsOperator(ctx) && !w.IsOwner(caller) && !isEstateBeneficiary(w, assets, caller) {
		return nil, errNotAuthorized
	}
	rows := make([]models.DistributionProof, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, a.ProofRow())
	}
	return rows, nil
}

// GetDistribution returns the digital payout record of a distributed will.
func (s *Service) GetDistribution(ctx context.Context, owner id.Identity) (*models.DistributionRecord, error) {
	w, err := s.wills.FindByOwner(ctx, owner)
	if err != nil {
		return nil, wrapWillErr(err, "failed to load will")
	}
	caller := requestcontext.Caller(ctx)
	if !requestcontext.IsOperator(ctx) && !w.IsOwner(caller) && !w.IsBeneficiary(caller) {
		return nil, errNotAuthorized
	}
	record, err := s.payouts.FindDistribution(ctx, owner)
	if err != nil {
		return nil, wrapNotDistributed(err)
	}
	return record, nil
}

// GetBalance returns everything credited to beneficiary across all wills.
// Beneficiaries see their own balance; the operator sees any.
func (s *Service) GetBalance(ctx context.Context, beneficiary id.Identity) (int64, error) {
	if !requestcontext.IsOperator(ctx) && requestcontext.Caller(ctx) != beneficiary {
		return 0, errNotAuthorized
	}
	balance, err := s.payouts.BalanceOf(ctx, beneficiary)
	if err != nil {
		return 0, wrapWillErr(err, "failed to load balance")
	}
	return balance, nil
}

func (s *Service) loadEstate(ctx context.Context, owner id.Identity) (*models.Will, []*models.PhysicalAsset, error) {
	w, err := s.wills.FindByOwner(ctx, owner)
	if err != nil {
		return nil, nil, wrapWillErr(err, "failed to load will")
	}
	assets, err := s.assets.ListByOwner(ctx, owner)
	if err != nil {
		return nil, nil, wrapAssetErr(err, "failed to list assets")
	}
	return w, assets, nil
}

// isEstateBeneficiary reports whether caller holds a digital share or a
// share of any of the owner's assets.
func isEstateBeneficiary(w *models.Will, assets []*models.PhysicalAsset, caller id.Identity) bool {
	if caller.IsZero() {
		return false
	}
	if w.IsBeneficiary(caller) {
		return true
	}
	for _, a := range assets {
		if slices.ContainsFunc(a.Beneficiaries, func(sh models.Share) bool { return sh.Beneficiary == caller }) {
			return true
		}
	}
	return false
}
