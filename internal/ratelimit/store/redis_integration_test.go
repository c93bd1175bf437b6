//go:build integration

package store

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"testament/internal/ratelimit"
	"testament/pkg/testutil/containers"
)

// Runs the store contract against a real Redis so the Lua script is
// checked by the server it ships to, not only by miniredis.
func TestRedisStoreIntegration(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	prefix := rc.Prefix(t)

	stores := 0
	suite.Run(t, &StoreSuite{newStore: func() ratelimit.Store {
		stores++
		return NewRedis(rc.Client, prefix+strconv.Itoa(stores)+":")
	}})

	t.Run("prefix cleanup only touches its own keys", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, rc.Client.Set(ctx, prefix+"scratch", "1", 0).Err())
		require.NoError(t, rc.Client.Set(ctx, "other-suite:key", "1", 0).Err())
		t.Cleanup(func() { _ = rc.Client.Del(ctx, "other-suite:key").Err() })

		require.NoError(t, rc.DeletePrefix(ctx, prefix))
		n, err := rc.Client.Exists(ctx, prefix+"scratch", "other-suite:key").Result()
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
	})
}
