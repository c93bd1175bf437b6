//go:build integration

package containers

import (
	"context"
	"strings"
	"testing"
	"unicode"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7-alpine"

// RedisContainer is the Redis shared by the rate limit, lock and cache
// suites. Suites isolate themselves with Prefix instead of flushing the
// database under each other.
type RedisContainer struct {
	Container testcontainers.Container
	Addr      string
	Client    *redis.Client
}

// NewRedisContainer starts Redis and returns a connected client.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, redisImage)
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get redis connection string: %v", err)
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to parse redis URL %q: %v", uri, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to ping redis: %v", err)
	}
	return &RedisContainer{Container: container, Addr: opts.Addr, Client: client}
}

// Prefix returns a key prefix owned by t. Every key under it is deleted when
// t finishes.
func (r *RedisContainer) Prefix(t *testing.T) string {
	t.Helper()
	name := strings.Map(func(c rune) rune {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			return c
		}
		return '-'
	}, t.Name())
	prefix := "testament-it:" + name + ":"
	t.Cleanup(func() {
		if err := r.DeletePrefix(context.Background(), prefix); err != nil {
			t.Logf("redis cleanup for %s: %v", prefix, err)
		}
	})
	return prefix
}

// DeletePrefix removes every key starting with prefix.
func (r *RedisContainer) DeletePrefix(ctx context.Context, prefix string) error {
	var keys []string
	iter := r.Client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.Client.Del(ctx, keys...).Err()
}
