package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"testament/internal/will/models"
	"testament/internal/will/ports"
	id "testament/pkg/domain"
	"testament/pkg/platform/audit"
	"testament/pkg/requestcontext"
)

const (
	kindDeath   = "death"
	kindProbate = "probate"
)

// ConfirmDeath moves InCreation to DeathConfirmed when the death registry
// lists the owner's national id as deceased today. Every other case is a
// soft no-op reported in the outcome.
func (s *Service) ConfirmDeath(ctx context.Context, owner id.Identity) (outcome models.ConfirmationOutcome, err error) {
	ctx, span := s.startSpan(ctx, "will.ConfirmDeath", owner)
	defer func() { endSpan(span, err) }()

	if err := requireOperator(ctx); err != nil {
		return models.ConfirmationOutcome{}, err
	}
	return s.confirm(ctx, owner, confirmation{
		kind:     kindDeath,
		from:     models.StateInCreation,
		event:    audit.EventDeathConfirmed,
		registry: "death",
		lookup: func(ctx context.Context, nid id.NationalID) (ports.RegistryMatch, error) {
			return s.registries.Death.LookupDeath(ctx, nid)
		},
		apply: (*models.Will).ApplyDeathConfirmed,
	})
}

// ConfirmGrantOfProbate moves DeathConfirmed to GrantOfProbateConfirmed when
// the probate registry lists an approved grant issued today.
func (s *Service) ConfirmGrantOfProbate(ctx context.Context, owner id.Identity) (outcome models.ConfirmationOutcome, err error) {
	ctx, span := s.startSpan(ctx, "will.ConfirmGrantOfProbate", owner)
	defer func() { endSpan(span, err) }()

	if err := requireOperator(ctx); err != nil {
		return models.ConfirmationOutcome{}, err
	}
	return s.confirm(ctx, owner, confirmation{
		kind:     kindProbate,
		from:     models.StateDeathConfirmed,
		event:    audit.EventProbateConfirmed,
		registry: "probate",
		lookup: func(ctx context.Context, nid id.NationalID) (ports.RegistryMatch, error) {
			return s.registries.Probate.LookupGrant(ctx, nid)
		},
		apply: (*models.Will).ApplyGrantOfProbateConfirmed,
	})
}

// ForceGrantOfProbate is the operator override that skips both registry
// checks.
func (s *Service) ForceGrantOfProbate(ctx context.Context, owner id.Identity) (*models.Will, error) {
	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	w, err := s.updateWill(ctx, owner,
		func(w *models.Will) error { return w.CanForceGrantOfProbate() },
		func(w *models.Will, now time.Time) error {
			w.ApplyForceGrantOfProbate(now)
			return nil
		},
		auditRecord{event: audit.EventProbateForced, decision: "override"},
	)
	if err != nil {
		return nil, err
	}
	s.logger.WarnContext(ctx, "grant of probate forced by operator",
		"owner", owner,
		"request_id", requestcontext.RequestID(ctx),
	)
	return w, nil
}

type confirmation struct {
	kind     string
	from     models.State
	event    audit.AuditEvent
	registry string
	lookup   func(context.Context, id.NationalID) (ports.RegistryMatch, error)
	apply    func(*models.Will, time.Time) bool
}

func (s *Service) confirm(ctx context.Context, owner id.Identity, c confirmation) (models.ConfirmationOutcome, error) {
	w, err := s.wills.FindByOwner(ctx, owner)
	if err != nil {
		return models.ConfirmationOutcome{}, wrapWillErr(err, "failed to load will")
	}
	if w.State != c.from {
		return s.skipConfirmation(ctx, c.kind, w, stateReason(w.State, c.from), false), nil
	}

	match, err := c.lookup(ctx, w.NationalID)
	if err != nil {
		s.logger.WarnContext(ctx, "registry lookup failed",
			"registry", c.registry,
			"owner", owner,
			"error", err,
		)
		return models.ConfirmationOutcome{}, wrapRegistryErr(err, c.registry)
	}
	now := requestcontext.Now(ctx)
	if !match.Found {
		return s.skipConfirmation(ctx, c.kind, w, models.ReasonNoRegistryRecord, true), nil
	}
	if !models.SameDay(match.Date, now, s.location) {
		return s.skipConfirmation(ctx, c.kind, w, models.ReasonNotToday, true), nil
	}

	outcome := models.ConfirmationOutcome{}
	err = s.tx.RunInTx(ctx, owner, func(txCtx context.Context) error {
		locked, err := s.wills.FindForUpdate(txCtx, owner)
		if err != nil {
			return wrapWillErr(err, "failed to load will")
		}
		if !c.apply(locked, now) {
			// Another confirmation won the race.
			outcome = models.ConfirmationOutcome{State: locked.State, Reason: stateReason(locked.State, c.from)}
			return nil
		}
		if err := s.wills.Save(txCtx, locked); err != nil {
			return wrapWillErr(err, "failed to save will")
		}
		if err := s.auditEmitter.emit(txCtx, auditRecord{
			event:   c.event,
			owner:   owner,
			subject: locked.NationalID.String(),
		}); err != nil {
			return err
		}
		outcome = models.ConfirmationOutcome{State: locked.State, Transitioned: true}
		return nil
	})
	if err != nil {
		return models.ConfirmationOutcome{}, err
	}

	s.incrementConfirmation(c.kind, outcome.Transitioned)
	if outcome.Transitioned {
		s.logger.InfoContext(ctx, "will advanced",
			"owner", owner,
			"state", outcome.State,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return outcome, nil
}

// skipConfirmation reports a no-op. Registry misses are audited; repeated
// confirmations of an already advanced will are not, since the relay retries
// them on every poll.
func (s *Service) skipConfirmation(ctx context.Context, kind string, w *models.Will, reason string, audited bool) models.ConfirmationOutcome {
	if audited {
		s.auditEmitter.emitBestEffort(ctx, auditRecord{
			event:    audit.EventConfirmationSkipped,
			owner:    w.Owner,
			subject:  kind,
			decision: "skipped",
			reason:   reason,
		})
	}
	s.incrementConfirmation(kind, false)
	return models.ConfirmationOutcome{State: w.State, Reason: reason}
}

// stateReason explains why a will outside the required state was skipped.
func stateReason(current, required models.State) string {
	if current.CanTransitionTo(required) {
		return models.ReasonWrongState
	}
	return models.ReasonAlreadyConfirmed
}

func (s *Service) startSpan(ctx context.Context, name string, owner id.Identity) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("will.owner", owner.String())))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Service) incrementConfirmation(kind string, transitioned bool) {
	if s.metrics != nil {
		s.metrics.IncrementConfirmation(kind, transitioned)
	}
}
