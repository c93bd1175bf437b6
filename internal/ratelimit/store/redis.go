package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"testament/internal/ratelimit"
)

// slidingWindow trims, counts and conditionally records a hit in one round
// trip. Scores are unix milliseconds passed as strings; the oldest score comes
// back as a string too.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
redis.call("ZREMRANGEBYSCORE", key, "-inf", ARGV[2])
local count = redis.call("ZCARD", key)
local allowed = 0
if count < tonumber(ARGV[3]) then
	redis.call("ZADD", key, ARGV[1], ARGV[4])
	redis.call("PEXPIRE", key, ARGV[5])
	count = count + 1
	allowed = 1
end
local oldest = ARGV[1]
local first = redis.call("ZRANGE", key, 0, 0, "WITHSCORES")
if first[2] then
	oldest = first[2]
end
return {allowed, count, oldest}
`)

// RedisStore shares one budget across every replica.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedis(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (ratelimit.Result, error) {
	nowMs := now.UnixMilli()
	raw, err := slidingWindow.Run(ctx, s.client,
		[]string{s.prefix + "ratelimit:" + key},
		strconv.FormatInt(nowMs, 10),
		strconv.FormatInt(nowMs-window.Milliseconds(), 10),
		limit,
		strconv.FormatInt(nowMs, 10)+"-"+uuid.NewString(),
		window.Milliseconds(),
	).Slice()
	if err != nil {
		return ratelimit.Result{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(raw) != 3 {
		return ratelimit.Result{}, fmt.Errorf("rate limit script returned %d values", len(raw))
	}
	allowed, _ := raw[0].(int64)
	count, _ := raw[1].(int64)
	oldestStr, _ := raw[2].(string)
	oldest, err := strconv.ParseFloat(oldestStr, 64)
	if err != nil {
		return ratelimit.Result{}, fmt.Errorf("rate limit script oldest score %q: %w", oldestStr, err)
	}
	resetAt := time.UnixMilli(int64(oldest)).Add(window)
	return result(allowed == 1, limit, int(count), resetAt, now), nil
}
