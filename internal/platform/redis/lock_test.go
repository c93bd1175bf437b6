package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*Locker, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLocker(client, "testament:"), mr
}

func TestLocker_LockUnlock(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "will:0xabc", time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("testament:lock:will:0xabc"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("testament:lock:will:0xabc"))
}

func TestLocker_ContendedLockTimesOut(t *testing.T) {
	locker, _ := newTestLocker(t)

	unlock, err := locker.Lock(context.Background(), "will:0xabc", time.Second)
	require.NoError(t, err)
	defer func() { _ = unlock(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "will:0xabc", time.Second)
	assert.ErrorIs(t, err, ErrLockAcquire)
}

func TestLocker_UnlockIgnoresForeignToken(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "k", time.Second)
	require.NoError(t, err)

	require.NoError(t, mr.Set("testament:lock:k", "someone-else"))
	require.NoError(t, unlock(ctx))

	value, err := mr.Get("testament:lock:k")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", value)
}
