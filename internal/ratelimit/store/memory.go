// Package store holds the sliding-window counters behind the rate limiter.
package store

import (
	"context"
	"math"
	"sync"
	"time"

	"testament/internal/ratelimit"
)

// InMemoryStore keeps a timestamp log per key. It is exact but local to
// one process; use RedisStore when several replicas share a budget.
type InMemoryStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{windows: make(map[string][]time.Time)}
}

func (s *InMemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration, now time.Time) (ratelimit.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hits := prune(s.windows[key], now.Add(-window))
	allowed := len(hits) < limit
	if allowed {
		hits = append(hits, now)
	}
	if len(hits) == 0 {
		delete(s.windows, key)
	} else {
		s.windows[key] = hits
	}

	resetAt := now.Add(window)
	if len(hits) > 0 {
		resetAt = hits[0].Add(window)
	}
	return result(allowed, limit, len(hits), resetAt, now), nil
}

// prune drops hits at or before cutoff. hits is sorted.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}

func result(allowed bool, limit, count int, resetAt, now time.Time) ratelimit.Result {
	res := ratelimit.Result{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   resetAt,
	}
	if !allowed {
		res.RetryAfter = max(int(math.Ceil(resetAt.Sub(now).Seconds())), 1)
	}
	return res
}
