package payout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testament/internal/will/models"
	id "testament/pkg/domain"
	"testament/pkg/platform/sentinel"
)

const (
	ownerA = id.Identity("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	ownerB = id.Identity("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	alice  = id.Identity("0xdddddddddddddddddddddddddddddddddddddddd")
	bob    = id.Identity("0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
)

func record(owner id.Identity, funds int64, shares []models.Share) models.DistributionRecord {
	payouts, remainder := models.ComputePayouts(funds, shares)
	return models.DistributionRecord{
		Owner:         owner,
		Funds:         funds,
		Payouts:       payouts,
		Remainder:     remainder,
		DistributedAt: time.Now(),
	}
}

func TestRecordDistribution(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	require.NoError(t, store.RecordDistribution(ctx, record(ownerA, 100, []models.Share{{Beneficiary: alice, Percent: 20}, {Beneficiary: bob, Percent: 80}})))
	require.NoError(t, store.RecordDistribution(ctx, record(ownerB, 99, []models.Share{{Beneficiary: alice, Percent: 33}, {Beneficiary: bob, Percent: 67}})))

	t.Run("credits accumulate across wills", func(t *testing.T) {
		balance, err := store.BalanceOf(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, int64(20+32), balance)

		balance, err = store.BalanceOf(ctx, bob)
		require.NoError(t, err)
		assert.Equal(t, int64(80+66), balance)
	})

	t.Run("second distribution for the same will conflicts", func(t *testing.T) {
		err := store.RecordDistribution(ctx, record(ownerA, 100, []models.Share{{Beneficiary: alice, Percent: 100}}))
		assert.ErrorIs(t, err, sentinel.ErrConflict)

		balance, err := store.BalanceOf(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, int64(52), balance)
	})

	t.Run("finds the record", func(t *testing.T) {
		found, err := store.FindDistribution(ctx, ownerB)
		require.NoError(t, err)
		assert.Equal(t, int64(99), found.Funds)
		assert.Equal(t, int64(1), found.Remainder)
		assert.Len(t, found.Payouts, 2)

		_, err = store.FindDistribution(ctx, alice)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
