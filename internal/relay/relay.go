// Package relay moves wills through the lifecycle without an operator at the
// keyboard. It reacts to registry events from Kafka, polls the registry for
// the current day's records as a reconciliation path, and optionally settles
// estates once probate is confirmed.
package relay

import (
	"context"
	"log/slog"
	"time"

	"testament/internal/registry/events"
	"testament/internal/platform/kafka/consumer"
	"testament/internal/will/models"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/requestcontext"
)

// Wills is the slice of the will service the relay drives.
type Wills interface {
	FindByNationalID(ctx context.Context, nationalID id.NationalID) (*models.Will, error)
	ConfirmDeath(ctx context.Context, owner id.Identity) (models.ConfirmationOutcome, error)
	ConfirmGrantOfProbate(ctx context.Context, owner id.Identity) (models.ConfirmationOutcome, error)
	ListWillsByState(ctx context.Context, state models.State) ([]*models.Will, error)
	DistributeEstate(ctx context.Context, owner id.Identity) (*models.EstateDistribution, error)
}

// Registry lists the national ids with records dated today.
type Registry interface {
	DeathsToday(ctx context.Context) ([]id.NationalID, error)
	GrantsToday(ctx context.Context) ([]id.NationalID, error)
}

const (
	kindDeath   = "death"
	kindProbate = "probate"
)

type Relay struct {
	wills          Wills
	registry       Registry
	logger         *slog.Logger
	metrics        *Metrics
	interval       time.Duration
	autoDistribute bool
}

type Option func(*Relay)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) { r.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(r *Relay) { r.metrics = m }
}

// WithInterval sets the registry polling period. Zero disables polling.
func WithInterval(d time.Duration) Option {
	return func(r *Relay) { r.interval = d }
}

// WithAutoDistribute settles every estate whose grant of probate is
// confirmed.
func WithAutoDistribute(enabled bool) Option {
	return func(r *Relay) { r.autoDistribute = enabled }
}

func New(wills Wills, registry Registry, opts ...Option) *Relay {
	r := &Relay{
		wills:    wills,
		registry: registry,
		interval: time.Minute,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Run polls until ctx is cancelled. Each tick is a full Reconcile.
func (r *Relay) Run(ctx context.Context) error {
	if r.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	r.Reconcile(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.Reconcile(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Reconcile confirms every will whose death or grant is registered today and
// then runs the distribution sweep. Failures are logged; the next tick
// retries them.
func (r *Relay) Reconcile(ctx context.Context) {
	ctx = requestcontext.WithOperator(ctx)

	if deaths, err := r.registry.DeathsToday(ctx); err != nil {
		r.logger.WarnContext(ctx, "list deaths today failed", "error", err)
	} else {
		for _, nid := range deaths {
			r.confirm(ctx, kindDeath, nid)
		}
	}
	if grants, err := r.registry.GrantsToday(ctx); err != nil {
		r.logger.WarnContext(ctx, "list grants today failed", "error", err)
	} else {
		for _, nid := range grants {
			r.confirm(ctx, kindProbate, nid)
		}
	}
	r.Sweep(ctx)
}

// Sweep distributes every estate whose grant of probate is confirmed. It is
// a no-op unless auto distribution is enabled.
func (r *Relay) Sweep(ctx context.Context) int {
	if !r.autoDistribute {
		return 0
	}
	ctx = requestcontext.WithOperator(ctx)
	wills, err := r.wills.ListWillsByState(ctx, models.StateGrantOfProbateConfirmed)
	if err != nil {
		r.logger.WarnContext(ctx, "list wills for distribution failed", "error", err)
		return 0
	}
	settled := 0
	for _, w := range wills {
		result, err := r.wills.DistributeEstate(ctx, w.Owner)
		if err != nil {
			r.metrics.IncrementSettlement(false)
			r.logger.ErrorContext(ctx, "estate distribution failed",
				"owner", w.Owner,
				"error", err,
			)
			continue
		}
		settled++
		r.metrics.IncrementSettlement(true)
		r.logger.InfoContext(ctx, "estate distributed",
			"owner", w.Owner,
			"assets", len(result.Assets),
			"remainder", result.Digital.Remainder,
		)
	}
	return settled
}

// HandleEvent implements consumer.Handler for the registry events topic.
// Malformed events are dropped. Only infrastructure failures are returned.
func (r *Relay) HandleEvent(ctx context.Context, msg *consumer.Message) error {
	e, err := events.Decode(msg.Value)
	if err != nil {
		r.logger.WarnContext(ctx, "dropping malformed registry event",
			"topic", msg.Topic,
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}
	ctx = requestcontext.WithOperator(ctx)

	var outcome models.ConfirmationOutcome
	switch e.Type {
	case events.TypeDeathRecorded:
		_, err = r.confirm(ctx, kindDeath, e.NationalID)
	case events.TypeProbateGranted:
		outcome, err = r.confirm(ctx, kindProbate, e.NationalID)
		if err == nil && outcome.Transitioned {
			r.Sweep(ctx)
		}
	}
	return err
}

// confirm routes a registry record to its will. A record with no will is
// ordinary: most people registered with the government have no testament.
func (r *Relay) confirm(ctx context.Context, kind string, nationalID id.NationalID) (models.ConfirmationOutcome, error) {
	w, err := r.wills.FindByNationalID(ctx, nationalID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			r.metrics.IncrementConfirmation(kind, "no_will")
			return models.ConfirmationOutcome{}, nil
		}
		r.metrics.IncrementConfirmation(kind, "error")
		r.logger.WarnContext(ctx, "will lookup failed", "kind", kind, "error", err)
		return models.ConfirmationOutcome{}, err
	}

	var outcome models.ConfirmationOutcome
	if kind == kindDeath {
		outcome, err = r.wills.ConfirmDeath(ctx, w.Owner)
	} else {
		outcome, err = r.wills.ConfirmGrantOfProbate(ctx, w.Owner)
	}
	if err != nil {
		r.metrics.IncrementConfirmation(kind, "error")
		r.logger.WarnContext(ctx, "confirmation failed",
			"kind", kind,
			"owner", w.Owner,
			"error", err,
		)
		return outcome, err
	}
	if outcome.Transitioned {
		r.metrics.IncrementConfirmation(kind, "transitioned")
		r.logger.InfoContext(ctx, "will advanced",
			"kind", kind,
			"owner", w.Owner,
			"state", outcome.State,
		)
	} else {
		r.metrics.IncrementConfirmation(kind, "skipped")
	}
	return outcome, nil
}
