// Package service orchestrates the will aggregate: the allocation ledger,
// the asset registry, the lifecycle state machine and distribution.
//
// Every mutation on one owner runs inside StoreTx.RunInTx for that owner.
// Registry lookups happen before the transaction so slow registries never
// hold the owner's lock.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	willmetrics "testament/internal/will/metrics"
	"testament/internal/will/models"
	"testament/internal/will/ports"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/platform/audit"
	"testament/pkg/requestcontext"
)

type WillStore interface {
	Create(ctx context.Context, w *models.Will) error
	FindByOwner(ctx context.Context, owner id.Identity) (*models.Will, error)
	FindForUpdate(ctx context.Context, owner id.Identity) (*models.Will, error)
	FindByNationalID(ctx context.Context, nationalID id.NationalID) (*models.Will, error)
	Save(ctx context.Context, w *models.Will) error
	ListByState(ctx context.Context, state models.State) ([]*models.Will, error)
}

type AssetStore interface {
	Create(ctx context.Context, a *models.PhysicalAsset) (id.AssetID, error)
	FindByID(ctx context.Context, assetID id.AssetID) (*models.PhysicalAsset, error)
	FindForUpdate(ctx context.Context, assetID id.AssetID) (*models.PhysicalAsset, error)
	ListByOwner(ctx context.Context, owner id.Identity) ([]*models.PhysicalAsset, error)
	Save(ctx context.Context, a *models.PhysicalAsset) error
	NextTokenIDs(ctx context.Context, n int) ([]uint64, error)
}

type PayoutStore interface {
	RecordDistribution(ctx context.Context, record models.DistributionRecord) error
	FindDistribution(ctx context.Context, owner id.Identity) (*models.DistributionRecord, error)
	BalanceOf(ctx context.Context, beneficiary id.Identity) (int64, error)
}

// Registries groups the two external lookups that gate the lifecycle.
type Registries struct {
	Death   ports.DeathRegistry
	Probate ports.ProbateRegistry
}

// Service is the will application service.
type Service struct {
	wills        WillStore
	assets       AssetStore
	payouts      PayoutStore
	registries   Registries
	auditEmitter *auditEmitter
	metrics      *willmetrics.Metrics
	tracer       trace.Tracer
	tx           StoreTx
	logger       *slog.Logger
	location     *time.Location
}

func New(wills WillStore, assets AssetStore, payouts PayoutStore, registries Registries, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	tx := cfg.tx
	if tx == nil {
		tx = NewShardedTx(0)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	loc := cfg.location
	if loc == nil {
		loc = time.UTC
	}
	tracer := cfg.tracer
	if tracer == nil {
		tracer = otel.Tracer("testament/internal/will")
	}
	return &Service{
		wills:        wills,
		assets:       assets,
		payouts:      payouts,
		registries:   registries,
		auditEmitter: newAuditEmitter(logger, cfg.auditPublisher),
		metrics:      cfg.metrics,
		tracer:       tracer,
		tx:           tx,
		logger:       logger,
		location:     loc,
	}
}

// CreateWill registers a will for owner in InCreation. The caller must be
// the owner or the platform operator.
func (s *Service) CreateWill(ctx context.Context, owner id.Identity, nationalID id.NationalID) (*models.Will, error) {
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid owner address")
	}
	if !requestcontext.IsOperator(ctx) && requestcontext.Caller(ctx) != owner {
		return nil, errNotAuthorized
	}

	var created *models.Will
	err := s.tx.RunInTx(ctx, owner, func(txCtx context.Context) error {
		w, err := models.NewWill(owner, nationalID, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.wills.Create(txCtx, w); err != nil {
			return wrapWillErr(err, "failed to create will")
		}
		if err := s.auditEmitter.emit(txCtx, auditRecord{
			event:   audit.EventWillCreated,
			owner:   owner,
			subject: nationalID.String(),
		}); err != nil {
			return err
		}
		created = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "will created",
		"owner", owner,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.incrementWillCreated()
	return created, nil
}

// GetWill returns the full will to parties allowed to read it.
func (s *Service) GetWill(ctx context.Context, owner id.Identity) (*models.Will, error) {
	w, err := s.wills.FindByOwner(ctx, owner)
	if err != nil {
		return nil, wrapWillErr(err, "failed to load will")
	}
	if !canRead(ctx, w) {
		return nil, errNotAuthorized
	}
	return w, nil
}

func (s *Service) GetWillState(ctx context.Context, owner id.Identity) (models.State, error) {
	w, err := s.wills.FindByOwner(ctx, owner)
	if err != nil {
		return "", wrapWillErr(err, "failed to load will")
	}
	return w.State, nil
}

func (s *Service) GetDigitalAssets(ctx context.Context, owner id.Identity) (int64, error) {
	w, err := s.wills.FindByOwner(ctx, owner)
	if err != nil {
		return 0, wrapWillErr(err, "failed to load will")
	}
	return w.DigitalAssets, nil
}

// FindByNationalID resolves the will registered under a registry key.
// Operator only; the relay uses it to route registry events.
func (s *Service) FindByNationalID(ctx context.Context, nationalID id.NationalID) (*models.Will, error) {
	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	w, err := s.wills.FindByNationalID(ctx, nationalID)
	if err != nil {
		return nil, wrapWillErr(err, "failed to load will")
	}
	return w, nil
}

// ListWillsByState is the operator's sweep over wills at one lifecycle stage.
func (s *Service) ListWillsByState(ctx context.Context, state models.State) ([]*models.Will, error) {
	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	wills, err := s.wills.ListByState(ctx, state)
	if err != nil {
		return nil, wrapWillErr(err, "failed to list wills")
	}
	return wills, nil
}

// FundWill credits the digital balance. Anyone may fund a will that is not
// closed.
func (s *Service) FundWill(ctx context.Context, owner id.Identity, amount int64) (*models.Will, error) {
	return s.updateWill(ctx, owner,
		func(*models.Will) error { return nil },
		func(w *models.Will, now time.Time) error { return w.Fund(amount, now) },
		auditRecord{event: audit.EventWillFunded, subject: formatAmount(amount)},
	)
}

// updateWill loads the owner's will for update, authorizes and mutates it,
// then saves it and records rec in one transaction. mutate must leave the
// will untouched when it fails.
func (s *Service) updateWill(
	ctx context.Context,
	owner id.Identity,
	authorize func(*models.Will) error,
	mutate func(*models.Will, time.Time) error,
	rec auditRecord,
) (*models.Will, error) {
	var updated *models.Will
	err := s.tx.RunInTx(ctx, owner, func(txCtx context.Context) error {
		w, err := s.wills.FindForUpdate(txCtx, owner)
		if err != nil {
			return wrapWillErr(err, "failed to load will")
		}
		if err := authorize(w); err != nil {
			return err
		}
		if err := mutate(w, requestcontext.Now(txCtx)); err != nil {
			return err
		}
		if err := s.wills.Save(txCtx, w); err != nil {
			return wrapWillErr(err, "failed to save will")
		}
		rec.owner = owner
		if err := s.auditEmitter.emit(txCtx, rec); err != nil {
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) incrementWillCreated() {
	if s.metrics != nil {
		s.metrics.IncrementWillCreated()
	}
}

func (s *Service) incrementLedgerMutation(op string) {
	if s.metrics != nil {
		s.metrics.IncrementLedgerMutation(op)
	}
}

func identityList(ids []id.Identity) string {
	parts := make([]string, len(ids))
	for i, v := range ids {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}
