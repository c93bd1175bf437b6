package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockAcquire is returned when the lock cannot be acquired before ctx ends.
var ErrLockAcquire = errors.New("failed to acquire distributed lock")

// UnlockFunc releases a held lock.
type UnlockFunc func(ctx context.Context) error

// Locker is a SET NX PX lock, released only by the holder's token.
type Locker struct {
	client       redis.UniversalClient
	prefix       string
	pollInterval time.Duration
}

func NewLocker(client redis.UniversalClient, prefix string) *Locker {
	return &Locker{
		client:       client,
		prefix:       prefix,
		pollInterval: 50 * time.Millisecond,
	}
}

const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// Lock blocks until key is acquired or ctx is done. ttl bounds how long a
// crashed holder can keep the key.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrLockAcquire, err)
		}
		ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis error acquiring lock: %w", err)
		}
		if ok {
			return func(ctx context.Context) error {
				return l.client.Eval(ctx, unlockScript, []string{lockKey}, token).Err()
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockAcquire, ctx.Err())
		case <-ticker.C:
		}
	}
}
