package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "testament/pkg/domain"
	audit "testament/pkg/platform/audit"
	txcontext "testament/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern.
// Append writes to the outbox table inside the caller's transaction when one
// is present in ctx, and materializes the event into audit_events for reads.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store that writes to the outbox.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// outboxPayload is the JSON structure relayed downstream.
type outboxPayload struct {
	ID        string `json:"ID"`
	Category  string `json:"Category"`
	Timestamp string `json:"Timestamp"`
	Owner     string `json:"Owner"`
	Subject   string `json:"Subject,omitempty"`
	Action    string `json:"Action"`
	Decision  string `json:"Decision,omitempty"`
	Reason    string `json:"Reason,omitempty"`
	RequestID string `json:"RequestID,omitempty"`
	ActorID   string `json:"ActorID,omitempty"`
}

// Append writes an audit event to the outbox and to audit_events.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()

	// Always derive category from action - eventCategories map is the source of truth
	event.Category = audit.AuditEvent(event.Action).Category()

	payload := outboxPayload{
		ID:        eventID.String(),
		Category:  string(event.Category),
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		Owner:     event.Owner.String(),
		Subject:   event.Subject,
		Action:    event.Action,
		Decision:  event.Decision,
		Reason:    event.Reason,
		RequestID: event.RequestID,
		ActorID:   event.ActorID,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	query := `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		uuid.New(),
		"will",
		event.Owner.String(),
		event.Action,
		payloadBytes,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return s.appendWithID(ctx, eventID, event)
}

// appendWithID is idempotent via ON CONFLICT DO NOTHING.
func (s *Store) appendWithID(ctx context.Context, eventID uuid.UUID, event audit.Event) error {
	query := `
		INSERT INTO audit_events (
			id, category, timestamp, owner, subject, action,
			decision, reason, request_id, actor_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		eventID,
		string(event.Category),
		event.Timestamp,
		event.Owner.String(),
		event.Subject,
		event.Action,
		event.Decision,
		event.Reason,
		event.RequestID,
		event.ActorID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByOwner returns events for one will, oldest first.
func (s *Store) ListByOwner(ctx context.Context, owner id.Identity) ([]audit.Event, error) {
	query := `
		SELECT category, timestamp, owner, subject, action,
			   decision, reason, request_id, actor_id
		FROM audit_events
		WHERE owner = $1
		ORDER BY timestamp ASC, action ASC
	`
	rows, err := s.db.QueryContext(ctx, query, owner.String())
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			category string
			ownerStr string
			event    audit.Event
		)
		err := rows.Scan(
			&category,
			&event.Timestamp,
			&ownerStr,
			&event.Subject,
			&event.Action,
			&event.Decision,
			&event.Reason,
			&event.RequestID,
			&event.ActorID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		event.Owner = id.Identity(ownerStr)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

// PendingOutbox returns up to limit unpublished outbox payloads, oldest first.
func (s *Store) PendingOutbox(ctx context.Context, limit int) ([]OutboxEntry, error) {
	query := `
		SELECT id, aggregate_id, event_type, payload
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []OutboxEntry
	for rows.Next() {
		var e OutboxEntry
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &e.Payload); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps an outbox entry as relayed.
func (s *Store) MarkPublished(ctx context.Context, entryID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `UPDATE outbox SET published_at = $2 WHERE id = $1`, entryID, time.Now())
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}

// OutboxEntry is one unpublished outbox row.
type OutboxEntry struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     []byte
}
