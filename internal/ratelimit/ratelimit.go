// Package ratelimit bounds how many requests one caller may make per sliding
// window. Callers are keyed by X-Caller-ID when it parses and by client IP
// otherwise. Reads and writes have separate budgets.
package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Class separates cheap reads from state-changing requests.
type Class string

const (
	ClassRead  Class = "read"
	ClassWrite Class = "write"
)

// Result is one limiter decision.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds, only set when not allowed
}

// Store records hits in a sliding window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Result, error)
}

// Limits is the per-window budget for each class.
type Limits struct {
	Window time.Duration
	Read   int
	Write  int
}

func (l Limits) of(class Class) int {
	if class == ClassWrite {
		return l.Write
	}
	return l.Read
}

type Limiter struct {
	store   Store
	limits  Limits
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

type Option func(*Limiter)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) { l.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(l *Limiter) { l.metrics = m }
}

func New(store Store, limits Limits, opts ...Option) *Limiter {
	l := &Limiter{store: store, limits: limits, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	return l
}

// Check counts one request for key. A store failure allows the request.
func (l *Limiter) Check(ctx context.Context, key string, class Class) (Result, error) {
	limit := l.limits.of(class)
	res, err := l.store.Allow(ctx, string(class)+":"+key, limit, l.limits.Window, l.now())
	if err != nil {
		l.metrics.ObserveDecision(class, "error")
		return Result{Allowed: true, Limit: limit, Remaining: limit}, err
	}
	if res.Allowed {
		l.metrics.ObserveDecision(class, "allowed")
	} else {
		l.metrics.ObserveDecision(class, "rejected")
	}
	return res, nil
}
