package service

import (
	"context"

	"testament/internal/will/models"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/platform/audit"
	"testament/pkg/requestcontext"
)

// AssetInput carries the fields of a new physical asset.
type AssetInput struct {
	Description      string
	Value            int64
	CertificationURL string
	Shares           []models.Share
}

// CreateAsset registers a physical asset under owner's will. The split must
// sum to exactly 100.
func (s *Service) CreateAsset(ctx context.Context, owner id.Identity, in AssetInput) (*models.PhysicalAsset, error) {
	var created *models.PhysicalAsset
	err := s.tx.RunInTx(ctx, owner, func(txCtx context.Context) error {
		w, err := s.wills.FindForUpdate(txCtx, owner)
		if err != nil {
			return wrapWillErr(err, "failed to load will")
		}
		if err := ownerOrEditor(txCtx)(w); err != nil {
			return err
		}
		if err := w.CanEditLedger(); err != nil {
			return err
		}
		a, err := models.NewPhysicalAsset(owner, in.Description, in.Value, in.CertificationURL, in.Shares, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if _, err := s.assets.Create(txCtx, a); err != nil {
			return wrapAssetErr(err, "failed to create asset")
		}
		if err := s.auditEmitter.emit(txCtx, auditRecord{
			event:   audit.EventAssetCreated,
			owner:   owner,
			subject: a.ID.String(),
		}); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.incrementLedgerMutation("create_asset")
	return created, nil
}

func (s *Service) GetAsset(ctx context.Context, assetID id.AssetID) (*models.PhysicalAsset, error) {
	a, err := s.assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, wrapAssetErr(err, "failed to load asset")
	}
	return a, nil
}

// UpdateAssetBeneficiaries fully replaces an undistributed asset's split.
func (s *Service) UpdateAssetBeneficiaries(ctx context.Context, assetID id.AssetID, shares []models.Share) (*models.PhysicalAsset, error) {
	// Owner is immutable, so reading it outside the transaction is safe.
	current, err := s.assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, wrapAssetErr(err, "failed to load asset")
	}
	owner := current.Owner

	var updated *models.PhysicalAsset
	err = s.tx.RunInTx(ctx, owner, func(txCtx context.Context) error {
		w, err := s.wills.FindForUpdate(txCtx, owner)
		if err != nil {
			return wrapWillErr(err, "failed to load will")
		}
		if err := ownerOrEditor(txCtx)(w); err != nil {
			return err
		}
		if err := w.CanEditLedger(); err != nil {
			return err
		}
		a, err := s.assets.FindForUpdate(txCtx, assetID)
		if err != nil {
			return wrapAssetErr(err, "failed to load asset")
		}
		if err := a.CanReplaceBeneficiaries(shares); err != nil {
			return err
		}
		a.ApplyReplaceBeneficiaries(shares)
		if err := s.assets.Save(txCtx, a); err != nil {
			return wrapAssetErr(err, "failed to save asset")
		}
		if err := s.auditEmitter.emit(txCtx, auditRecord{
			event:   audit.EventAssetBeneficiariesUpdate,
			owner:   owner,
			subject: assetID.String() + ":" + shareList(shares),
		}); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.incrementLedgerMutation("update_asset_beneficiaries")
	return updated, nil
}

// ownedAsset loads an asset and checks it belongs to owner.
func (s *Service) ownedAsset(ctx context.Context, owner id.Identity, assetID id.AssetID, forUpdate bool) (*models.PhysicalAsset, error) {
	find := s.assets.FindByID
	if forUpdate {
		find = s.assets.FindForUpdate
	}
	a, err := find(ctx, assetID)
	if err != nil {
		return nil, wrapAssetErr(err, "failed to load asset")
	}
	if a.Owner != owner {
		return nil, dErrors.New(dErrors.CodeNotFound, "asset not found")
	}
	return a, nil
}
