// Package cache keeps recent registry lookups close to the confirmation path.
// Only positive results are cached: a record that does not exist yet may be
// registered at any moment.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"testament/internal/registry/models"
	id "testament/pkg/domain"
)

type kind string

const (
	kindDeath kind = "death"
	kindGrant kind = "grant"
)

// RedisCache stores records as JSON under "<prefix>registry:<kind>:<nid>".
type RedisCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedis(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) key(k kind, nationalID id.NationalID) string {
	return c.prefix + "registry:" + string(k) + ":" + nationalID.String()
}

func (c *RedisCache) GetDeath(ctx context.Context, nationalID id.NationalID) (*models.DeathRecord, bool, error) {
	var r models.DeathRecord
	ok, err := c.get(ctx, c.key(kindDeath, nationalID), &r)
	if !ok || err != nil {
		return nil, false, err
	}
	return &r, true, nil
}

func (c *RedisCache) SetDeath(ctx context.Context, r models.DeathRecord) error {
	return c.set(ctx, c.key(kindDeath, r.NationalID), r)
}

func (c *RedisCache) GetGrant(ctx context.Context, nationalID id.NationalID) (*models.ProbateRecord, bool, error) {
	var r models.ProbateRecord
	ok, err := c.get(ctx, c.key(kindGrant, nationalID), &r)
	if !ok || err != nil {
		return nil, false, err
	}
	return &r, true, nil
}

func (c *RedisCache) SetGrant(ctx context.Context, r models.ProbateRecord) error {
	return c.set(ctx, c.key(kindGrant, r.NationalID), r)
}

// Invalidate drops both documents cached for nationalID.
func (c *RedisCache) Invalidate(ctx context.Context, nationalID id.NationalID) error {
	if err := c.client.Del(ctx, c.key(kindDeath, nationalID), c.key(kindGrant, nationalID)).Err(); err != nil {
		return fmt.Errorf("invalidate registry cache: %w", err)
	}
	return nil
}

func (c *RedisCache) get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read registry cache: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A corrupt entry is a miss; the caller refills it.
		_ = c.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode registry cache entry: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write registry cache: %w", err)
	}
	return nil
}

type memoryEntry struct {
	value   any
	expires time.Time
}

// MemoryCache is the process-local fallback when Redis is not configured.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemory(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func memoryKey(k kind, nationalID id.NationalID) string {
	return string(k) + ":" + nationalID.String()
}

func (c *MemoryCache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *MemoryCache) store(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: v, expires: c.now().Add(c.ttl)}
}

func (c *MemoryCache) GetDeath(_ context.Context, nationalID id.NationalID) (*models.DeathRecord, bool, error) {
	v, ok := c.lookup(memoryKey(kindDeath, nationalID))
	if !ok {
		return nil, false, nil
	}
	r := v.(models.DeathRecord)
	return &r, true, nil
}

func (c *MemoryCache) SetDeath(_ context.Context, r models.DeathRecord) error {
	c.store(memoryKey(kindDeath, r.NationalID), r)
	return nil
}

func (c *MemoryCache) GetGrant(_ context.Context, nationalID id.NationalID) (*models.ProbateRecord, bool, error) {
	v, ok := c.lookup(memoryKey(kindGrant, nationalID))
	if !ok {
		return nil, false, nil
	}
	r := v.(models.ProbateRecord)
	return &r, true, nil
}

func (c *MemoryCache) SetGrant(_ context.Context, r models.ProbateRecord) error {
	c.store(memoryKey(kindGrant, r.NationalID), r)
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context, nationalID id.NationalID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, memoryKey(kindDeath, nationalID))
	delete(c.entries, memoryKey(kindGrant, nationalID))
	return nil
}
