package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"testament/internal/will/models"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/platform/audit"
	"testament/pkg/platform/sentinel"
	"testament/pkg/requestcontext"
)

const (
	kindDigital = "digital"
	kindAsset   = "asset"
)

// DistributeDigitalAssets pays the digital balance out to every beneficiary,
// residual included, credits the payout ledger and closes the will, all in
// one transaction. The truncation remainder stays as the will's balance.
func (s *Service) DistributeDigitalAssets(ctx context.Context, owner id.Identity) (record *models.DistributionRecord, err error) {
	ctx, span := s.startSpan(ctx, "will.DistributeDigitalAssets", owner)
	defer func() { endSpan(span, err) }()

	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	start := time.Now()
	defer s.observeDistribution(start)

	err = s.tx.RunInTx(ctx, owner, func(txCtx context.Context) error {
		w, err := s.wills.FindForUpdate(txCtx, owner)
		if err != nil {
			return wrapWillErr(err, "failed to load will")
		}
		if err := w.CanDistribute(); err != nil {
			return err
		}
		rec, err := s.payDigital(txCtx, w, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		record = &rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("will.funds", record.Funds), attribute.Int64("will.remainder", record.Remainder))
	s.recordDigitalMetrics(*record)
	s.logger.InfoContext(ctx, "digital assets distributed",
		"owner", owner,
		"funds", record.Funds,
		"remainder", record.Remainder,
		"request_id", requestcontext.RequestID(ctx),
	)
	return record, nil
}

// DistributeAsset assigns one asset's title shares and closes the will.
// Outside GrantOfProbateConfirmed it is a skipped no-op, not an error.
func (s *Service) DistributeAsset(ctx context.Context, owner id.Identity, assetID id.AssetID) (outcome models.AssetDistributionOutcome, err error) {
	ctx, span := s.startSpan(ctx, "will.DistributeAsset", owner)
	span.SetAttributes(attribute.Int64("asset.id", int64(assetID)))
	defer func() { endSpan(span, err) }()

	if err := requireOperator(ctx); err != nil {
		return models.AssetDistributionOutcome{}, err
	}
	start := time.Now()
	defer s.observeDistribution(start)

	err = s.tx.RunInTx(ctx, owner, func(txCtx context.Context) error {
		w, err := s.wills.FindForUpdate(txCtx, owner)
		if err != nil {
			return wrapWillErr(err, "failed to load will")
		}
		a, err := s.ownedAsset(txCtx, owner, assetID, true)
		if err != nil {
			return err
		}
		if w.State != models.StateGrantOfProbateConfirmed {
			outcome = models.AssetDistributionOutcome{Skipped: true, Reason: models.ReasonProbateNotGranted}
			return nil
		}
		now := requestcontext.Now(txCtx)
		proof, err := s.payAsset(txCtx, a, now)
		if err != nil {
			return err
		}
		w.ApplyClose(now)
		if err := s.wills.Save(txCtx, w); err != nil {
			return wrapWillErr(err, "failed to save will")
		}
		outcome = models.AssetDistributionOutcome{Proof: &proof}
		return nil
	})
	if err != nil {
		return models.AssetDistributionOutcome{}, err
	}

	if outcome.Skipped {
		s.auditEmitter.emitBestEffort(ctx, auditRecord{
			event:    audit.EventAssetDistributionSkipped,
			owner:    owner,
			subject:  assetID.String(),
			decision: "skipped",
			reason:   outcome.Reason,
		})
		s.incrementDistribution(kindAsset, false)
		return outcome, nil
	}
	s.incrementDistribution(kindAsset, true)
	s.logger.InfoContext(ctx, "asset distributed",
		"owner", owner,
		"asset_id", assetID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return outcome, nil
}

// DistributeEstate settles a whole estate at once: every undistributed asset
// and then the digital balance, closing the will. Distributing assets one at
// a time closes the will after the first, so this is the path the relay uses.
func (s *Service) DistributeEstate(ctx context.Context, owner id.Identity) (result *models.EstateDistribution, err error) {
	ctx, span := s.startSpan(ctx, "will.DistributeEstate", owner)
	defer func() { endSpan(span, err) }()

	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	start := time.Now()
	defer s.observeDistribution(start)

	err = s.tx.RunInTx(ctx, owner, func(txCtx context.Context) error {
		w, err := s.wills.FindForUpdate(txCtx, owner)
		if err != nil {
			return wrapWillErr(err, "failed to load will")
		}
		if err := w.CanDistribute(); err != nil {
			return err
		}
		assets, err := s.assets.ListByOwner(txCtx, owner)
		if err != nil {
			return wrapAssetErr(err, "failed to list assets")
		}
		now := requestcontext.Now(txCtx)
		res := &models.EstateDistribution{Assets: make([]models.DistributionProof, 0, len(assets))}
		for _, listed := range assets {
			if listed.Distributed {
				continue
			}
			a, err := s.assets.FindForUpdate(txCtx, listed.ID)
			if err != nil {
				return wrapAssetErr(err, "failed to load asset")
			}
			proof, err := s.payAsset(txCtx, a, now)
			if err != nil {
				return err
			}
			res.Assets = append(res.Assets, proof)
		}
		rec, err := s.payDigital(txCtx, w, now)
		if err != nil {
			return err
		}
		res.Digital = rec
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	for range result.Assets {
		s.incrementDistribution(kindAsset, true)
	}
	s.recordDigitalMetrics(result.Digital)
	s.logger.InfoContext(ctx, "estate distributed",
		"owner", owner,
		"assets", len(result.Assets),
		"funds", result.Digital.Funds,
		"request_id", requestcontext.RequestID(ctx),
	)
	return result, nil
}

// payDigital closes w, persists it and records the payouts. Callers hold the
// owner's transaction and have checked CanDistribute.
func (s *Service) payDigital(ctx context.Context, w *models.Will, now time.Time) (models.DistributionRecord, error) {
	record := w.ApplyDigitalDistribution(now)
	if err := s.wills.Save(ctx, w); err != nil {
		return models.DistributionRecord{}, wrapWillErr(err, "failed to save will")
	}
	if err := s.payouts.RecordDistribution(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.DistributionRecord{}, dErrors.New(dErrors.CodeInvalidState, "will already distributed")
		}
		return models.DistributionRecord{}, wrapWillErr(err, "failed to record distribution")
	}
	if err := s.auditEmitter.emit(ctx, auditRecord{
		event:   audit.EventDigitalDistributed,
		owner:   w.Owner,
		subject: formatAmount(record.Funds),
	}); err != nil {
		return models.DistributionRecord{}, err
	}
	return record, nil
}

// payAsset mints one title token per beneficiary and writes the proof.
func (s *Service) payAsset(ctx context.Context, a *models.PhysicalAsset, now time.Time) (models.DistributionProof, error) {
	if err := a.CanDistribute(); err != nil {
		return models.DistributionProof{}, err
	}
	tokens, err := s.assets.NextTokenIDs(ctx, len(a.Beneficiaries))
	if err != nil {
		return models.DistributionProof{}, wrapAssetErr(err, "failed to mint title tokens")
	}
	a.ApplyDistribution(tokens, now)
	if err := s.assets.Save(ctx, a); err != nil {
		return models.DistributionProof{}, wrapAssetErr(err, "failed to save asset")
	}
	if err := s.auditEmitter.emit(ctx, auditRecord{
		event:   audit.EventAssetDistributed,
		owner:   a.Owner,
		subject: a.ID.String(),
	}); err != nil {
		return models.DistributionProof{}, err
	}
	return a.ProofRow(), nil
}

func (s *Service) recordDigitalMetrics(record models.DistributionRecord) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementDistribution(kindDigital, true)
	s.metrics.AddDigitalPaidOut(record.Funds - record.Remainder)
}

func (s *Service) incrementDistribution(kind string, executed bool) {
	if s.metrics != nil {
		s.metrics.IncrementDistribution(kind, executed)
	}
}

func (s *Service) observeDistribution(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDistribution(start)
	}
}
