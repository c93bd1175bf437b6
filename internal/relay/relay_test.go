package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"testament/internal/platform/kafka/consumer"
	"testament/internal/registry/events"
	"testament/internal/relay/mocks"
	"testament/internal/will/models"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/requestcontext"
)

const (
	ownerA = id.Identity("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	ownerB = id.Identity("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	nidA   = id.NationalID("S7654321B")
	nidB   = id.NationalID("S1234567A")
)

// operatorCtx matches contexts that carry the operator flag.
var operatorCtx = gomock.Cond(func(x any) bool {
	ctx, ok := x.(context.Context)
	return ok && requestcontext.IsOperator(ctx)
})

//go:generate mockgen -source=relay.go -destination=mocks/relay-mocks.go -package=mocks Wills,Registry
type RelaySuite struct {
	suite.Suite
	wills    *mocks.MockWills
	registry *mocks.MockRegistry
	metrics  *Metrics
}

func TestRelaySuite(t *testing.T) {
	suite.Run(t, new(RelaySuite))
}

func (s *RelaySuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.wills = mocks.NewMockWills(ctrl)
	s.registry = mocks.NewMockRegistry(ctrl)
	s.metrics = NewMetricsWithRegisterer(prometheus.NewRegistry())
}

func (s *RelaySuite) relay(opts ...Option) *Relay {
	return New(s.wills, s.registry, append([]Option{WithMetrics(s.metrics)}, opts...)...)
}

func (s *RelaySuite) TestReconcile() {
	s.registry.EXPECT().DeathsToday(operatorCtx).Return([]id.NationalID{nidA, nidB}, nil)
	s.wills.EXPECT().FindByNationalID(operatorCtx, nidA).Return(&models.Will{Owner: ownerA, NationalID: nidA}, nil)
	s.wills.EXPECT().FindByNationalID(operatorCtx, nidB).Return(nil, dErrors.New(dErrors.CodeNotFound, "will not found"))
	s.wills.EXPECT().ConfirmDeath(operatorCtx, ownerA).Return(models.ConfirmationOutcome{
		State:        models.StateDeathConfirmed,
		Transitioned: true,
	}, nil)
	s.registry.EXPECT().GrantsToday(operatorCtx).Return(nil, errors.New("registry down"))

	s.relay().Reconcile(context.Background())

	s.Equal(1.0, testutil.ToFloat64(s.metrics.Confirmations.WithLabelValues(kindDeath, "transitioned")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Confirmations.WithLabelValues(kindDeath, "no_will")))
}

func (s *RelaySuite) TestSweep() {
	s.Run("disabled", func() {
		s.Zero(s.relay().Sweep(context.Background()))
	})

	s.Run("failures do not stop the sweep", func() {
		s.wills.EXPECT().ListWillsByState(operatorCtx, models.StateGrantOfProbateConfirmed).
			Return([]*models.Will{{Owner: ownerA}, {Owner: ownerB}}, nil)
		s.wills.EXPECT().DistributeEstate(operatorCtx, ownerA).Return(nil, dErrors.New(dErrors.CodeInternal, "boom"))
		s.wills.EXPECT().DistributeEstate(operatorCtx, ownerB).Return(&models.EstateDistribution{}, nil)

		s.Equal(1, s.relay(WithAutoDistribute(true)).Sweep(context.Background()))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.Settlements.WithLabelValues("failed")))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.Settlements.WithLabelValues("distributed")))
	})
}

func (s *RelaySuite) message(t events.Type, nid id.NationalID) *consumer.Message {
	_, value, err := events.Event{Type: t, NationalID: nid, Date: time.Now(), RecordedAt: time.Now()}.Encode()
	s.Require().NoError(err)
	return &consumer.Message{Topic: "registry.events", Value: value}
}

func (s *RelaySuite) TestHandleEvent() {
	s.Run("death confirms the will", func() {
		s.wills.EXPECT().FindByNationalID(operatorCtx, nidA).Return(&models.Will{Owner: ownerA}, nil)
		s.wills.EXPECT().ConfirmDeath(operatorCtx, ownerA).Return(models.ConfirmationOutcome{
			State:  models.StateDeathConfirmed,
			Reason: models.ReasonAlreadyConfirmed,
		}, nil)

		s.NoError(s.relay(WithAutoDistribute(true)).HandleEvent(context.Background(), s.message(events.TypeDeathRecorded, nidA)))
	})

	s.Run("granted probate triggers a sweep", func() {
		s.wills.EXPECT().FindByNationalID(operatorCtx, nidA).Return(&models.Will{Owner: ownerA}, nil)
		s.wills.EXPECT().ConfirmGrantOfProbate(operatorCtx, ownerA).Return(models.ConfirmationOutcome{
			State:        models.StateGrantOfProbateConfirmed,
			Transitioned: true,
		}, nil)
		s.wills.EXPECT().ListWillsByState(operatorCtx, models.StateGrantOfProbateConfirmed).
			Return([]*models.Will{{Owner: ownerA}}, nil)
		s.wills.EXPECT().DistributeEstate(operatorCtx, ownerA).Return(&models.EstateDistribution{}, nil)

		s.NoError(s.relay(WithAutoDistribute(true)).HandleEvent(context.Background(), s.message(events.TypeProbateGranted, nidA)))
	})

	s.Run("malformed payload is dropped", func() {
		s.NoError(s.relay().HandleEvent(context.Background(), &consumer.Message{Value: []byte(`{"type":"nope"}`)}))
	})

	s.Run("store failure is returned", func() {
		s.wills.EXPECT().FindByNationalID(operatorCtx, nidB).Return(nil, dErrors.New(dErrors.CodeUnavailable, "store down"))

		err := s.relay().HandleEvent(context.Background(), s.message(events.TypeDeathRecorded, nidB))
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func (s *RelaySuite) TestRunWithoutPollingWaitsForCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.ErrorIs(s.relay(WithInterval(0)).Run(ctx), context.Canceled)
}
