//go:build integration

package asset_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"testament/internal/will/models"
	"testament/internal/will/store/asset"
	id "testament/pkg/domain"
	"testament/pkg/platform/sentinel"
	"testament/pkg/testutil/containers"
)

const (
	owner = id.Identity("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	alice = id.Identity("0xdddddddddddddddddddddddddddddddddddddddd")
	bob   = id.Identity("0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *asset.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = asset.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "physical_assets"))
	s.Require().NoError(s.postgres.ResetSequence(ctx, "asset_token_seq"))
}

func (s *PostgresStoreSuite) newAsset(description string) *models.PhysicalAsset {
	a, err := models.NewPhysicalAsset(owner, description, 1000, "cert.pdf",
		[]models.Share{{Beneficiary: alice, Percent: 25}, {Beneficiary: bob, Percent: 75}}, time.Now().UTC())
	s.Require().NoError(err)
	return a
}

func (s *PostgresStoreSuite) TestCreateAssignsSequentialIDs() {
	ctx := context.Background()
	first, err := s.store.Create(ctx, s.newAsset("House"))
	s.Require().NoError(err)
	second, err := s.store.Create(ctx, s.newAsset("Car"))
	s.Require().NoError(err)
	s.Equal(id.AssetID(1), first)
	s.Equal(id.AssetID(2), second)
}

func (s *PostgresStoreSuite) TestDistributionRoundTrip() {
	ctx := context.Background()
	assetID, err := s.store.Create(ctx, s.newAsset("House"))
	s.Require().NoError(err)

	a, err := s.store.FindForUpdate(ctx, assetID)
	s.Require().NoError(err)
	s.False(a.Distributed)
	s.Nil(a.Proof)

	tokens, err := s.store.NextTokenIDs(ctx, 2)
	s.Require().NoError(err)
	s.Equal([]uint64{1, 2}, tokens)

	a.ApplyDistribution(tokens, time.Now().UTC())
	s.Require().NoError(s.store.Save(ctx, a))

	found, err := s.store.FindByID(ctx, assetID)
	s.Require().NoError(err)
	s.True(found.Distributed)
	s.Require().NotNil(found.DistributedAt)
	s.Equal(a.Proof, found.Proof)

	listed, err := s.store.ListByOwner(ctx, owner)
	s.Require().NoError(err)
	s.Len(listed, 1)
}

func (s *PostgresStoreSuite) TestMissingAsset() {
	_, err := s.store.FindByID(context.Background(), 99)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
