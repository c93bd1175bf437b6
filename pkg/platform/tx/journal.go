package tx

import (
	"context"
	"sync"
)

type journalKey struct{}

// Journal collects compensating actions for stores that cannot roll back on
// their own. The in-memory stores register one per write; the transaction
// that owns the journal replays them newest first when it fails.
type Journal struct {
	mu   sync.Mutex
	undo []func()
}

// WithJournal attaches a fresh journal to ctx. A journal already in ctx is
// reused so nested transactions share one rollback.
func WithJournal(ctx context.Context) (context.Context, *Journal, bool) {
	if j, ok := ctx.Value(journalKey{}).(*Journal); ok {
		return ctx, j, false
	}
	j := &Journal{}
	return context.WithValue(ctx, journalKey{}, j), j, true
}

// OnRollback registers undo with the journal in ctx. Writes made outside a
// journaled transaction are final and register nothing.
func OnRollback(ctx context.Context, undo func()) {
	j, ok := ctx.Value(journalKey{}).(*Journal)
	if !ok || undo == nil {
		return
	}
	j.mu.Lock()
	j.undo = append(j.undo, undo)
	j.mu.Unlock()
}

// Rollback runs the registered actions in reverse order and empties the journal.
func (j *Journal) Rollback() {
	j.mu.Lock()
	undo := j.undo
	j.undo = nil
	j.mu.Unlock()
	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
}
