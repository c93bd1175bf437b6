package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "testament/pkg/domain-errors"
)

func TestNewPhysicalAsset(t *testing.T) {
	now := time.Now()

	t.Run("split must sum to exactly 100", func(t *testing.T) {
		_, err := NewPhysicalAsset(owner, "Car", 10, "", []Share{{alice, 50}, {bob, 40}}, now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeAllocationExceeded))

		_, err = NewPhysicalAsset(owner, "Car", 10, "", []Share{{alice, 60}, {bob, 50}}, now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeAllocationExceeded))
	})

	t.Run("duplicate beneficiaries rejected", func(t *testing.T) {
		_, err := NewPhysicalAsset(owner, "Car", 10, "", []Share{{alice, 50}, {alice, 50}}, now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("description required", func(t *testing.T) {
		_, err := NewPhysicalAsset(owner, "  ", 10, "", []Share{{alice, 100}}, now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("valid asset starts undistributed", func(t *testing.T) {
		a, err := NewPhysicalAsset(owner, "Car", 10, "ipfs://car", []Share{{alice, 50}, {bob, 50}}, now)
		require.NoError(t, err)
		assert.False(t, a.Distributed)
		assert.Empty(t, a.Proof)
	})
}

func TestPhysicalAssetDistribution(t *testing.T) {
	now := time.Now()
	a, err := NewPhysicalAsset(owner, "Car", 10, "", []Share{{alice, 60}, {bob, 40}}, now)
	require.NoError(t, err)
	a.ID = 7

	row := a.ProofRow()
	assert.False(t, row.Executed)
	assert.Empty(t, row.Beneficiaries)
	assert.NotNil(t, row.TokenIDs)

	require.NoError(t, a.CanDistribute())
	a.ApplyDistribution([]uint64{11, 12}, now)

	row = a.ProofRow()
	assert.True(t, row.Executed)
	assert.Equal(t, []uint64{11, 12}, row.TokenIDs)
	assert.Equal(t, []int{60, 40}, row.Shares)
	assert.Equal(t, alice, row.Beneficiaries[0])

	assert.True(t, dErrors.HasCode(a.CanDistribute(), dErrors.CodeInvalidState))
	assert.True(t, dErrors.HasCode(a.CanReplaceBeneficiaries([]Share{{alice, 100}}), dErrors.CodeInvalidState))
}

func TestStateTransitions(t *testing.T) {
	assert.True(t, StateInCreation.CanTransitionTo(StateDeathConfirmed))
	assert.True(t, StateDeathConfirmed.CanTransitionTo(StateGrantOfProbateConfirmed))
	assert.True(t, StateGrantOfProbateConfirmed.CanTransitionTo(StateClosed))

	assert.False(t, StateInCreation.CanTransitionTo(StateGrantOfProbateConfirmed))
	assert.False(t, StateDeathConfirmed.CanTransitionTo(StateInCreation))
	assert.False(t, StateClosed.CanTransitionTo(StateClosed))

	st, err := ParseState("GrantOfProbateConfirmed")
	require.NoError(t, err)
	assert.Equal(t, StateGrantOfProbateConfirmed, st)

	_, err = ParseState("Probated")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
