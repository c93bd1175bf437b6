// Package publisher emits audit events to an audit.Store.
//
// In the default synchronous mode Emit blocks until the store write finishes
// and returns its error, so callers can fail closed. When the store is the
// Postgres outbox and ctx carries a transaction, the event commits or rolls
// back with the business change.
//
// WithAsyncBuffer switches to a buffered mode: events are queued and a
// background worker persists them. A full buffer drops the event.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	id "testament/pkg/domain"
	audit "testament/pkg/platform/audit"
	"testament/pkg/platform/audit/worker"
)

var ErrBufferFull = errors.New("audit buffer full")

type Publisher struct {
	store      audit.Store
	logger     *slog.Logger
	bufferSize int

	mu     sync.RWMutex
	closed bool
	inbox  chan audit.Event
	done   chan struct{}
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithAsyncBuffer enables buffered, non-blocking emission.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.bufferSize = size
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.inbox = make(chan audit.Event, p.bufferSize)
		p.done = make(chan struct{})
		w := worker.NewWorker(store, p.inbox, p.logger)
		go func() {
			defer close(p.done)
			_ = w.Run(context.Background())
		}()
	}
	return p
}

func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrBufferFull
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit buffer full, dropping event",
				"action", event.Action,
				"owner", event.Owner,
			)
		}
		return ErrBufferFull
	}
}

func (p *Publisher) List(ctx context.Context, owner id.Identity) ([]audit.Event, error) {
	return p.store.ListByOwner(ctx, owner)
}

// Close drains any buffered events. Safe to call more than once.
func (p *Publisher) Close() {
	if p.inbox == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.inbox)
	p.mu.Unlock()
	<-p.done
}
