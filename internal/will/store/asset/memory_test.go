package asset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

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

type AssetStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *AssetStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestAssetStoreSuite(t *testing.T) {
	suite.Run(t, new(AssetStoreSuite))
}

func (s *AssetStoreSuite) newAsset(owner id.Identity, description string) *models.PhysicalAsset {
	a, err := models.NewPhysicalAsset(owner, description, 500000, "cert.pdf",
		[]models.Share{{Beneficiary: alice, Percent: 60}, {Beneficiary: bob, Percent: 40}}, time.Now())
	s.Require().NoError(err)
	return a
}

// TestSequentialIDs verifies ids start at 1 and never repeat across owners.
func (s *AssetStoreSuite) TestSequentialIDs() {
	first, err := s.store.Create(s.ctx, s.newAsset(ownerA, "House"))
	s.Require().NoError(err)
	second, err := s.store.Create(s.ctx, s.newAsset(ownerB, "Car"))
	s.Require().NoError(err)
	third, err := s.store.Create(s.ctx, s.newAsset(ownerA, "Watch"))
	s.Require().NoError(err)

	s.Equal(id.AssetID(1), first)
	s.Equal(id.AssetID(2), second)
	s.Equal(id.AssetID(3), third)

	s.Run("separate instances have separate counters", func() {
		other := NewInMemory()
		assetID, err := other.Create(s.ctx, s.newAsset(ownerA, "House"))
		s.Require().NoError(err)
		s.Equal(id.AssetID(1), assetID)
	})
}

func (s *AssetStoreSuite) TestListByOwner() {
	_, err := s.store.Create(s.ctx, s.newAsset(ownerA, "House"))
	s.Require().NoError(err)
	_, err = s.store.Create(s.ctx, s.newAsset(ownerB, "Car"))
	s.Require().NoError(err)
	_, err = s.store.Create(s.ctx, s.newAsset(ownerA, "Watch"))
	s.Require().NoError(err)

	assets, err := s.store.ListByOwner(s.ctx, ownerA)
	s.Require().NoError(err)
	s.Require().Len(assets, 2)
	s.Equal("House", assets[0].Description)
	s.Equal("Watch", assets[1].Description)

	none, err := s.store.ListByOwner(s.ctx, alice)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *AssetStoreSuite) TestSaveDistribution() {
	assetID, err := s.store.Create(s.ctx, s.newAsset(ownerA, "House"))
	s.Require().NoError(err)

	a, err := s.store.FindForUpdate(s.ctx, assetID)
	s.Require().NoError(err)
	tokens, err := s.store.NextTokenIDs(s.ctx, len(a.Beneficiaries))
	s.Require().NoError(err)
	s.Equal([]uint64{1, 2}, tokens)

	a.ApplyDistribution(tokens, time.Now())
	s.Require().NoError(s.store.Save(s.ctx, a))

	found, err := s.store.FindByID(s.ctx, assetID)
	s.Require().NoError(err)
	s.True(found.Distributed)
	s.Len(found.Proof, 2)

	more, err := s.store.NextTokenIDs(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal([]uint64{3}, more)
}

func (s *AssetStoreSuite) TestNotFound() {
	_, err := s.store.FindByID(s.ctx, 42)
	s.ErrorIs(err, sentinel.ErrNotFound)

	missing := s.newAsset(ownerA, "Ghost")
	missing.ID = 42
	s.ErrorIs(s.store.Save(s.ctx, missing), sentinel.ErrNotFound)
}
