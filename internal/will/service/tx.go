package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	redisplatform "testament/internal/platform/redis"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	txcontext "testament/pkg/platform/tx"
)

// StoreTx provides the single-writer-per-owner boundary. Every mutation of
// one owner's will, assets and payouts runs inside RunInTx for that owner;
// different owners proceed in parallel.
type StoreTx interface {
	RunInTx(ctx context.Context, owner id.Identity, fn func(txCtx context.Context) error) error
}

// numWillShards spreads owners over independent mutexes.
const numWillShards = 128

// defaultTxTimeout is the maximum duration for a will transaction.
const defaultTxTimeout = 5 * time.Second

// ShardedTx serializes writers per owner with sharded mutexes. Two owners
// may share a shard; that only costs parallelism. When fn fails, writes the
// in-memory stores made through the tx context are undone.
type ShardedTx struct {
	shards  [numWillShards]sync.Mutex
	timeout time.Duration
}

// NewShardedTx is the single-process boundary used with the in-memory stores.
func NewShardedTx(timeout time.Duration) *ShardedTx {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	return &ShardedTx{timeout: timeout}
}

func (t *ShardedTx) RunInTx(ctx context.Context, owner id.Identity, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	ctx, cancel := withTxTimeout(ctx, t.timeout)
	defer cancel()

	shard := hashOwner(owner) % numWillShards
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	ctx, journal, owned := txcontext.WithJournal(ctx)
	if !owned {
		return fn(ctx)
	}
	defer func() {
		if p := recover(); p != nil {
			journal.Rollback()
			panic(p)
		}
	}()
	if err := fn(ctx); err != nil {
		journal.Rollback()
		return err
	}
	return nil
}

// PostgresTx runs fn in a database transaction. Stores join it through the
// tx context and lock the owner's row with SELECT ... FOR UPDATE.
type PostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresTx(db *sql.DB, timeout time.Duration) *PostgresTx {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	return &PostgresTx{db: db, timeout: timeout}
}

func (t *PostgresTx) RunInTx(ctx context.Context, _ id.Identity, fn func(ctx context.Context) error) error {
	ctx, cancel := withTxTimeout(ctx, t.timeout)
	defer cancel()

	err := txcontext.Run(ctx, t.db, fn)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		if _, ok := dErrors.As(err); !ok {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction timed out")
		}
	}
	return err
}

// Locker is satisfied by the Redis lock in internal/platform/redis.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (redisplatform.UnlockFunc, error)
}

// LockedTx takes a cluster-wide lock on the owner before delegating, so
// several service replicas sharing one store keep the single-writer rule.
type LockedTx struct {
	locker Locker
	inner  StoreTx
	ttl    time.Duration
}

func NewLockedTx(locker Locker, inner StoreTx, ttl time.Duration) *LockedTx {
	if ttl <= 0 {
		ttl = 2 * defaultTxTimeout
	}
	return &LockedTx{locker: locker, inner: inner, ttl: ttl}
}

func (t *LockedTx) RunInTx(ctx context.Context, owner id.Identity, fn func(ctx context.Context) error) (err error) {
	unlock, err := t.locker.Lock(ctx, "will:"+owner.String(), t.ttl)
	if err != nil {
		if errors.Is(err, redisplatform.ErrLockAcquire) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "will is busy, try again")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to lock will")
	}
	defer func() {
		// Release on a fresh context so a cancelled request still unlocks.
		if uerr := unlock(context.WithoutCancel(ctx)); uerr != nil && err == nil {
			err = fmt.Errorf("release will lock: %w", uerr)
		}
	}()
	return t.inner.RunInTx(ctx, owner, fn)
}

func withTxTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// hashOwner uses FNV-1a for better hash distribution than simple multiply-add.
func hashOwner(owner id.Identity) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	s := owner.String()
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
