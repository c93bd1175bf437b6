package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"testament/pkg/platform/audit/store/postgres"
)

// OutboxSource is the unpublished side of the audit outbox.
type OutboxSource interface {
	PendingOutbox(ctx context.Context, limit int) ([]postgres.OutboxEntry, error)
	MarkPublished(ctx context.Context, entryID uuid.UUID) error
}

// Producer publishes one record.
type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte, headers map[string]string) error
}

// HeaderEventType carries the audit action on every relayed record.
const HeaderEventType = "event_type"

// Outbox copies audit outbox rows to Kafka. Delivery is at least once: a
// crash between Publish and MarkPublished republishes the row.
type Outbox struct {
	source   OutboxSource
	producer Producer
	topic    string
	batch    int
	interval time.Duration
	logger   *slog.Logger
	metrics  *Metrics
}

type OutboxOption func(*Outbox)

func WithOutboxBatch(n int) OutboxOption {
	return func(o *Outbox) { o.batch = n }
}

func WithOutboxInterval(d time.Duration) OutboxOption {
	return func(o *Outbox) { o.interval = d }
}

func WithOutboxLogger(logger *slog.Logger) OutboxOption {
	return func(o *Outbox) { o.logger = logger }
}

func WithOutboxMetrics(m *Metrics) OutboxOption {
	return func(o *Outbox) { o.metrics = m }
}

func NewOutbox(source OutboxSource, producer Producer, topic string, opts ...OutboxOption) *Outbox {
	o := &Outbox{
		source:   source,
		producer: producer,
		topic:    topic,
		batch:    100,
		interval: time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Run drains the outbox every interval until ctx is cancelled.
func (o *Outbox) Run(ctx context.Context) error {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		if _, err := o.Drain(ctx); err != nil {
			o.logger.WarnContext(ctx, "outbox drain failed", "error", err)
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Drain publishes one batch in order and stops at the first failure so
// events for an owner are never reordered. Records are keyed by owner.
func (o *Outbox) Drain(ctx context.Context) (int, error) {
	entries, err := o.source.PendingOutbox(ctx, o.batch)
	if err != nil {
		return 0, fmt.Errorf("load pending outbox: %w", err)
	}
	published := 0
	for _, e := range entries {
		headers := map[string]string{HeaderEventType: e.EventType}
		if err := o.producer.Publish(ctx, o.topic, []byte(e.AggregateID), e.Payload, headers); err != nil {
			o.metrics.IncrementOutboxFailure()
			return published, fmt.Errorf("publish outbox entry %s: %w", e.ID, err)
		}
		if err := o.source.MarkPublished(ctx, e.ID); err != nil {
			return published, err
		}
		o.metrics.IncrementOutboxPublished()
		published++
	}
	if published > 0 {
		o.logger.DebugContext(ctx, "outbox relayed", "count", published)
	}
	return published, nil
}
