package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
)

const (
	owner    id.Identity = "0xOwner000000000000000000000000000000000001"
	residual id.Identity = "0xResidual0000000000000000000000000000000002"
	alice    id.Identity = "0xAlice000000000000000000000000000000000003"
	bob      id.Identity = "0xBob00000000000000000000000000000000000004"
	carol    id.Identity = "0xCarol000000000000000000000000000000000005"
)

// LedgerSuite covers the allocation ledger invariants:
// Σ shares ≤ 100, and == 100 once a residual beneficiary exists.
type LedgerSuite struct {
	suite.Suite
	now  time.Time
	will *Will
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	w, err := NewWill(owner, "S7654321B", s.now)
	s.Require().NoError(err)
	s.will = w
}

func (s *LedgerSuite) withResidual() {
	s.Require().NoError(s.will.SetResidual(residual, s.now))
}

func (s *LedgerSuite) assertBalanced() {
	s.Equal(FullAllocation, s.will.TotalAllocated())
}

// =============================================================================
// Construction
// =============================================================================

func (s *LedgerSuite) TestNewWill() {
	s.Run("starts in creation with an empty ledger", func() {
		s.Equal(StateInCreation, s.will.State)
		s.Empty(s.will.Beneficiaries)
		s.Equal(0, s.will.TotalAllocated())
	})

	s.Run("rejects missing owner", func() {
		_, err := NewWill("", "S7654321B", s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects missing national id", func() {
		_, err := NewWill(owner, "", s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

// =============================================================================
// Residual beneficiary
// =============================================================================

func (s *LedgerSuite) TestSetResidual() {
	s.Run("first residual absorbs the full estate", func() {
		s.withResidual()
		s.Equal(residual, s.will.Residual)
		s.Equal(100, s.will.AllocationOf(residual))
	})

	s.Run("setting the same residual again is a no-op", func() {
		s.Require().NoError(s.will.AddBeneficiaries([]Share{{alice, 30}}, s.now))
		before := s.will.Clone()

		s.Require().NoError(s.will.SetResidual(residual, s.now))
		s.Equal(before.Beneficiaries, s.will.Beneficiaries)
		s.assertBalanced()
	})

	s.Run("new residual takes over the old residual share", func() {
		s.Require().NoError(s.will.SetResidual(bob, s.now))
		s.Equal(bob, s.will.Residual)
		s.Equal(70, s.will.AllocationOf(bob))
		s.Equal(0, s.will.AllocationOf(residual))
		s.False(s.will.IsBeneficiary(residual))
		s.assertBalanced()
	})

	s.Run("new residual that already holds a share merges", func() {
		s.Require().NoError(s.will.SetResidual(alice, s.now))
		s.Equal(100, s.will.AllocationOf(alice))
		s.False(s.will.IsBeneficiary(bob))
		s.assertBalanced()
	})

	s.Run("zero identity is rejected", func() {
		err := s.will.SetResidual(id.ZeroIdentity, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// =============================================================================
// Add beneficiaries
// =============================================================================

func (s *LedgerSuite) TestAddBeneficiaries() {
	s.Run("fails without a residual", func() {
		err := s.will.AddBeneficiaries([]Share{{alice, 10}}, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeResidualNotSet))
		s.Empty(s.will.Beneficiaries)
	})

	s.Run("deducts each share from the residual", func() {
		s.withResidual()
		s.Require().NoError(s.will.AddBeneficiaries([]Share{{alice, 20}, {bob, 70}}, s.now))

		s.Equal(20, s.will.AllocationOf(alice))
		s.Equal(70, s.will.AllocationOf(bob))
		s.Equal(10, s.will.AllocationOf(residual))
		s.assertBalanced()
	})

	s.Run("exceeding 100 fails without partial effects", func() {
		before := s.will.Clone()
		err := s.will.AddBeneficiaries([]Share{{carol, 5}, {carol, 20}}, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeAllocationExceeded))
		s.Equal(before.Beneficiaries, s.will.Beneficiaries)
	})

	s.Run("repeated identity keeps the last share", func() {
		s.Require().NoError(s.will.AddBeneficiaries([]Share{{carol, 4}, {carol, 6}}, s.now))
		s.Equal(6, s.will.AllocationOf(carol))
		s.Equal(4, s.will.AllocationOf(residual))
		s.assertBalanced()
	})

	s.Run("naming the residual keeps its derived share", func() {
		w, err := NewWill(owner, "S7654321B", s.now)
		s.Require().NoError(err)
		s.Require().NoError(w.SetResidual(bob, s.now))

		s.Require().NoError(w.AddBeneficiaries([]Share{{alice, 20}, {bob, 70}}, s.now))
		s.Equal(20, w.AllocationOf(alice))
		s.Equal(80, w.AllocationOf(bob))
		s.Equal(FullAllocation, w.TotalAllocated())
	})

	s.Run("residual share beyond the others' headroom fails", func() {
		w, err := NewWill(owner, "S7654321B", s.now)
		s.Require().NoError(err)
		s.Require().NoError(w.SetResidual(bob, s.now))

		err = w.AddBeneficiaries([]Share{{alice, 20}, {bob, 100}}, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeAllocationExceeded))
		s.False(w.IsBeneficiary(alice))
		s.Equal(100, w.AllocationOf(bob))
	})

	s.Run("shares outside 0..100 are rejected", func() {
		err := s.will.AddBeneficiaries([]Share{{carol, -1}}, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *LedgerSuite) TestAddBeneficiaries_Boundary() {
	s.withResidual()

	s.Run("exactly 100 is allowed", func() {
		s.Require().NoError(s.will.AddBeneficiaries([]Share{{alice, 60}, {bob, 40}}, s.now))
		s.Equal(0, s.will.AllocationOf(residual))
		s.assertBalanced()
	})

	s.Run("one more percent fails", func() {
		err := s.will.AddBeneficiaries([]Share{{carol, 1}}, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeAllocationExceeded))
		s.False(s.will.IsBeneficiary(carol))
	})

	s.Run("zero share is allowed", func() {
		s.Require().NoError(s.will.AddBeneficiaries([]Share{{carol, 0}}, s.now))
		s.True(s.will.IsBeneficiary(carol))
		s.assertBalanced()
	})
}

// =============================================================================
// Update allocations
// =============================================================================

func (s *LedgerSuite) TestUpdateAllocations() {
	s.withResidual()
	s.Require().NoError(s.will.AddBeneficiaries([]Share{{alice, 20}, {bob, 70}}, s.now))

	s.Run("residual absorbs the difference", func() {
		s.Require().NoError(s.will.UpdateAllocations([]Share{{alice, 30}, {bob, 50}}, s.now))
		s.Equal(30, s.will.AllocationOf(alice))
		s.Equal(50, s.will.AllocationOf(bob))
		s.Equal(20, s.will.AllocationOf(residual))
		s.assertBalanced()
	})

	s.Run("batch is atomic when the residual would go negative", func() {
		before := s.will.Clone()
		err := s.will.UpdateAllocations([]Share{{alice, 40}, {bob, 70}}, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeAllocationExceeded))
		s.Equal(before.Beneficiaries, s.will.Beneficiaries)
	})

	s.Run("naming the residual within headroom leaves it derived", func() {
		s.Require().NoError(s.will.UpdateAllocations([]Share{{residual, 10}}, s.now))
		s.Equal(20, s.will.AllocationOf(residual))
		s.assertBalanced()
	})

	s.Run("naming the residual beyond headroom fails", func() {
		before := s.will.Clone()
		err := s.will.UpdateAllocations([]Share{{residual, 21}}, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeAllocationExceeded))
		s.Equal(before.Beneficiaries, s.will.Beneficiaries)
	})

	s.Run("unknown beneficiary is not found", func() {
		err := s.will.UpdateAllocations([]Share{{carol, 5}}, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// =============================================================================
// Remove beneficiaries
// =============================================================================

func (s *LedgerSuite) TestRemoveBeneficiaries() {
	s.withResidual()

	s.Run("add then remove restores the ledger", func() {
		before := s.will.Clone()
		s.Require().NoError(s.will.AddBeneficiaries([]Share{{alice, 25}}, s.now))
		s.Require().NoError(s.will.RemoveBeneficiaries([]id.Identity{alice}, s.now))
		s.Equal(before.Beneficiaries, s.will.Beneficiaries)
		s.Equal(0, s.will.AllocationOf(alice))
	})

	s.Run("residual cannot be removed", func() {
		err := s.will.RemoveBeneficiaries([]id.Identity{residual}, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeResidualRemoval))
		s.Equal(100, s.will.AllocationOf(residual))
	})

	s.Run("unknown beneficiary leaves the ledger untouched", func() {
		s.Require().NoError(s.will.AddBeneficiaries([]Share{{alice, 25}}, s.now))
		before := s.will.Clone()
		err := s.will.RemoveBeneficiaries([]id.Identity{alice, carol}, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal(before.Beneficiaries, s.will.Beneficiaries)
	})
}

func (s *LedgerSuite) TestClosedWillIsFrozen() {
	s.withResidual()
	s.will.State = StateClosed

	s.True(dErrors.HasCode(s.will.AddBeneficiaries([]Share{{alice, 1}}, s.now), dErrors.CodeInvalidState))
	s.True(dErrors.HasCode(s.will.SetResidual(bob, s.now), dErrors.CodeInvalidState))
	s.True(dErrors.HasCode(s.will.Fund(10, s.now), dErrors.CodeInvalidState))
}

// =============================================================================
// Editors, viewers, funds
// =============================================================================

func (s *LedgerSuite) TestEditorsAndViewers() {
	s.Run("editor lifecycle", func() {
		s.Require().NoError(s.will.AddEditor(alice, s.now))
		s.True(s.will.IsEditor(alice))
		s.True(s.will.CanEdit(alice))

		err := s.will.AddEditor(alice, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		s.Require().NoError(s.will.RemoveEditor(alice, s.now))
		s.False(s.will.CanEdit(alice))

		err = s.will.RemoveEditor(alice, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("zero editor rejected", func() {
		err := s.will.AddEditor(id.ZeroIdentity, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("viewer lifecycle", func() {
		s.Require().NoError(s.will.AddViewer(bob, s.now))
		s.True(s.will.IsViewer(bob))
		s.True(dErrors.HasCode(s.will.AddViewer(bob, s.now), dErrors.CodeConflict))
		s.Require().NoError(s.will.RemoveViewer(bob, s.now))
		s.True(dErrors.HasCode(s.will.RemoveViewer(bob, s.now), dErrors.CodeNotFound))
	})
}

func (s *LedgerSuite) TestFund() {
	s.Require().NoError(s.will.Fund(100, s.now))
	s.Require().NoError(s.will.Fund(50, s.now))
	s.Equal(int64(150), s.will.DigitalAssets)

	s.True(dErrors.HasCode(s.will.Fund(0, s.now), dErrors.CodeValidation))
}

func TestPairShares(t *testing.T) {
	_, err := PairShares([]id.Identity{alice, bob}, []int{10})
	if !dErrors.HasCode(err, dErrors.CodeValidation) {
		t.Fatalf("expected validation error for mismatched lengths, got %v", err)
	}
	shares, err := PairShares([]id.Identity{alice, bob}, []int{10, 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shares) != 2 || shares[1].Beneficiary != bob || shares[1].Percent != 20 {
		t.Fatalf("unexpected shares %+v", shares)
	}
}
