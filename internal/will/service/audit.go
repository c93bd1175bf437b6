package service

import (
	"context"
	"log/slog"

	"testament/internal/will/ports"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/platform/audit"
	"testament/pkg/requestcontext"
)

// auditEmitter builds will audit events from the request context.
//
// emit fails closed: a write the audit trail cannot record is rolled back.
// emitBestEffort is for soft outcomes that change nothing.
type auditEmitter struct {
	logger    *slog.Logger
	publisher ports.AuditPort
}

func newAuditEmitter(logger *slog.Logger, publisher ports.AuditPort) *auditEmitter {
	return &auditEmitter{logger: logger, publisher: publisher}
}

type auditRecord struct {
	event    audit.AuditEvent
	owner    id.Identity
	subject  string
	decision string
	reason   string
}

func (e *auditEmitter) emit(ctx context.Context, rec auditRecord) error {
	if e.publisher == nil {
		return nil
	}
	if err := e.publisher.Emit(ctx, e.build(ctx, rec)); err != nil {
		e.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", string(rec.event),
			"owner", rec.owner,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}

func (e *auditEmitter) emitBestEffort(ctx context.Context, rec auditRecord) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Emit(ctx, e.build(ctx, rec)); err != nil {
		e.logger.WarnContext(ctx, "failed to emit audit event",
			"action", string(rec.event),
			"owner", rec.owner,
			"error", err,
		)
	}
}

func (e *auditEmitter) build(ctx context.Context, rec auditRecord) audit.Event {
	actor := requestcontext.Caller(ctx).String()
	if actor == "" && requestcontext.IsOperator(ctx) {
		actor = "operator"
	}
	return audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Owner:     rec.owner,
		Subject:   rec.subject,
		Action:    string(rec.event),
		Decision:  rec.decision,
		Reason:    rec.reason,
		RequestID: requestcontext.RequestID(ctx),
		ActorID:   actor,
	}
}
