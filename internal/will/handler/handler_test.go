package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"testament/internal/will/handler/mocks"
	"testament/internal/will/models"
	"testament/internal/will/service"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/platform/middleware/caller"
	"testament/pkg/requestcontext"
)

const (
	ownerAddr  = id.Identity("0x1111111111111111111111111111111111111111")
	aliceAddr  = id.Identity("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	bobAddr    = id.Identity("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	adminToken = "operator-secret"
)

//go:generate mockgen -source=handler.go -destination=mocks/will-mocks.go -package=mocks Service
type WillHandlerSuite struct {
	suite.Suite
	svc    *mocks.MockService
	router chi.Router
}

func TestWillHandlerSuite(t *testing.T) {
	suite.Run(t, new(WillHandlerSuite))
}

func (s *WillHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.svc = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	New(s.svc, logger, adminToken).Register(s.router)
}

func (s *WillHandlerSuite) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func asCaller(who id.Identity) map[string]string {
	return map[string]string{caller.HeaderCallerID: string(who)}
}

func asOperator() map[string]string {
	return map[string]string{"X-Admin-Token": adminToken}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func testWill() *models.Will {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	w, _ := models.NewWill(ownerAddr, id.NationalID("AB123456"), now)
	return w
}

func (s *WillHandlerSuite) TestCreateWill() {
	s.Run("creates will for the caller", func() {
		s.svc.EXPECT().
			CreateWill(gomock.Any(), ownerAddr, id.NationalID("AB123456")).
			DoAndReturn(func(_ context.Context, _ id.Identity, _ id.NationalID) (*models.Will, error) {
				return testWill(), nil
			})

		w := s.do(http.MethodPost, "/wills", map[string]string{"national_id": "ab123456"}, asCaller(ownerAddr))

		s.Equal(http.StatusCreated, w.Code)
		var got models.Will
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
		s.Equal(ownerAddr, got.Owner)
		s.Equal(models.StateInCreation, got.State)
	})

	s.Run("rejects missing caller", func() {
		w := s.do(http.MethodPost, "/wills", map[string]string{"national_id": "AB123456"}, nil)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("rejects malformed national id", func() {
		w := s.do(http.MethodPost, "/wills", map[string]string{"national_id": "no"}, asCaller(ownerAddr))
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("rejects unknown fields", func() {
		w := s.do(http.MethodPost, "/wills", map[string]string{"national_id": "AB123456", "extra": "x"}, asCaller(ownerAddr))
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal(string(dErrors.CodeBadRequest), decodeError(s.T(), w))
	})

	s.Run("maps conflict", func() {
		s.svc.EXPECT().CreateWill(gomock.Any(), ownerAddr, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "will already exists"))

		w := s.do(http.MethodPost, "/wills", map[string]string{"national_id": "AB123456"}, asCaller(ownerAddr))
		s.Equal(http.StatusConflict, w.Code)
	})
}

func (s *WillHandlerSuite) TestLedgerRoutes() {
	s.Run("add beneficiaries pairs lists", func() {
		want := []models.Share{{Beneficiary: aliceAddr, Percent: 30}, {Beneficiary: bobAddr, Percent: 20}}
		s.svc.EXPECT().AddBeneficiaries(gomock.Any(), ownerAddr, want).Return(testWill(), nil)

		w := s.do(http.MethodPost, "/wills/"+string(ownerAddr)+"/beneficiaries", SharesRequest{
			Beneficiaries: []string{string(aliceAddr), string(bobAddr)},
			Shares:        []int{30, 20},
		}, asCaller(ownerAddr))

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("length mismatch is rejected before the service", func() {
		w := s.do(http.MethodPatch, "/wills/"+string(ownerAddr)+"/beneficiaries", SharesRequest{
			Beneficiaries: []string{string(aliceAddr), string(bobAddr)},
			Shares:        []int{30},
		}, asCaller(ownerAddr))

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("residual not set maps to 422", func() {
		s.svc.EXPECT().AddBeneficiaries(gomock.Any(), ownerAddr, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeResidualNotSet, "residual beneficiary not set"))

		w := s.do(http.MethodPost, "/wills/"+string(ownerAddr)+"/beneficiaries", SharesRequest{
			Beneficiaries: []string{string(aliceAddr)},
			Shares:        []int{10},
		}, asCaller(ownerAddr))

		s.Equal(http.StatusUnprocessableEntity, w.Code)
		s.Equal(string(dErrors.CodeResidualNotSet), decodeError(s.T(), w))
	})

	s.Run("set residual", func() {
		s.svc.EXPECT().SetResidualBeneficiary(gomock.Any(), ownerAddr, aliceAddr).Return(testWill(), nil)

		w := s.do(http.MethodPut, "/wills/"+string(ownerAddr)+"/residual",
			map[string]string{"beneficiary": string(aliceAddr)}, asCaller(ownerAddr))

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("remove beneficiaries", func() {
		s.svc.EXPECT().RemoveBeneficiaries(gomock.Any(), ownerAddr, []id.Identity{bobAddr}).Return(testWill(), nil)

		w := s.do(http.MethodDelete, "/wills/"+string(ownerAddr)+"/beneficiaries",
			map[string][]string{"beneficiaries": {string(bobAddr)}}, asCaller(ownerAddr))

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("allocation lookup is public", func() {
		s.svc.EXPECT().GetAllocationPercentage(gomock.Any(), ownerAddr, aliceAddr).Return(40, nil)

		w := s.do(http.MethodGet, "/wills/"+string(ownerAddr)+"/beneficiaries/"+string(aliceAddr), nil, nil)

		s.Equal(http.StatusOK, w.Code)
		var got AllocationResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
		s.Equal(40, got.Percent)
	})
}

func (s *WillHandlerSuite) TestMembershipRoutes() {
	s.svc.EXPECT().AddEditor(gomock.Any(), ownerAddr, aliceAddr).Return(testWill(), nil)
	w := s.do(http.MethodPost, "/wills/"+string(ownerAddr)+"/editors/"+string(aliceAddr), nil, asCaller(ownerAddr))
	s.Equal(http.StatusOK, w.Code)

	s.svc.EXPECT().IsViewer(gomock.Any(), ownerAddr, bobAddr).Return(true, nil)
	w = s.do(http.MethodGet, "/wills/"+string(ownerAddr)+"/viewers/"+string(bobAddr), nil, nil)
	s.Equal(http.StatusOK, w.Code)
	var got MembershipResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.True(got.Member)

	s.svc.EXPECT().RemoveViewer(gomock.Any(), ownerAddr, bobAddr).
		Return(nil, dErrors.New(dErrors.CodeForbidden, "only the owner can manage viewers"))
	w = s.do(http.MethodDelete, "/wills/"+string(ownerAddr)+"/viewers/"+string(bobAddr), nil, asCaller(aliceAddr))
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *WillHandlerSuite) TestFundAndBalance() {
	funded := testWill()
	funded.DigitalAssets = 500
	s.svc.EXPECT().FundWill(gomock.Any(), ownerAddr, int64(500)).Return(funded, nil)

	w := s.do(http.MethodPost, "/wills/"+string(ownerAddr)+"/fund", FundRequest{Amount: 500}, nil)
	s.Equal(http.StatusOK, w.Code)
	var got DigitalAssetsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.EqualValues(500, got.DigitalAssets)

	w = s.do(http.MethodPost, "/wills/"+string(ownerAddr)+"/fund", FundRequest{Amount: 0}, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	s.svc.EXPECT().GetBalance(gomock.Any(), aliceAddr).Return(int64(125), nil)
	w = s.do(http.MethodGet, "/balances/"+string(aliceAddr), nil, asCaller(aliceAddr))
	s.Equal(http.StatusOK, w.Code)
}

func (s *WillHandlerSuite) TestAssetRoutes() {
	s.Run("create asset passes validated input", func() {
		s.svc.EXPECT().CreateAsset(gomock.Any(), ownerAddr, service.AssetInput{
			Description:      "Cottage",
			Value:            250000,
			CertificationURL: "https://registry.example/cert/1",
			Shares:           []models.Share{{Beneficiary: aliceAddr, Percent: 100}},
		}).Return(&models.PhysicalAsset{ID: 1, Owner: ownerAddr}, nil)

		w := s.do(http.MethodPost, "/wills/"+string(ownerAddr)+"/assets", CreateAssetRequest{
			Description:      "Cottage",
			Value:            250000,
			CertificationURL: "https://registry.example/cert/1",
			Beneficiaries:    []string{string(aliceAddr)},
			Shares:           []int{100},
		}, asCaller(ownerAddr))

		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("invalid asset id", func() {
		w := s.do(http.MethodGet, "/assets/zero", nil, nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("asset not found", func() {
		s.svc.EXPECT().GetAsset(gomock.Any(), id.AssetID(9)).Return(nil, dErrors.New(dErrors.CodeNotFound, "asset not found"))
		w := s.do(http.MethodGet, "/assets/9", nil, nil)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *WillHandlerSuite) TestViewWill() {
	report := models.NewReport(testWill(), nil)

	s.Run("json by default", func() {
		s.svc.EXPECT().ViewWill(gomock.Any(), ownerAddr).Return(report, nil)
		w := s.do(http.MethodGet, "/wills/"+string(ownerAddr)+"/view", nil, asCaller(ownerAddr))

		s.Equal(http.StatusOK, w.Code)
		var got ReportResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
		s.Equal(report.String(), got.Text)
	})

	s.Run("plain text on request", func() {
		s.svc.EXPECT().ViewWill(gomock.Any(), ownerAddr).Return(report, nil)
		headers := asCaller(ownerAddr)
		headers["Accept"] = "text/plain"
		w := s.do(http.MethodGet, "/wills/"+string(ownerAddr)+"/view", nil, headers)

		s.Equal(http.StatusOK, w.Code)
		s.True(strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
		s.Equal(report.String(), w.Body.String())
	})
}

func (s *WillHandlerSuite) TestAdminRoutes() {
	s.Run("requires admin token", func() {
		w := s.do(http.MethodPost, "/admin/wills/"+string(ownerAddr)+"/confirm-death", nil, nil)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("confirm death runs as operator", func() {
		s.svc.EXPECT().ConfirmDeath(gomock.Any(), ownerAddr).
			DoAndReturn(func(ctx context.Context, _ id.Identity) (models.ConfirmationOutcome, error) {
				s.True(requestcontext.IsOperator(ctx))
				return models.ConfirmationOutcome{State: models.StateDeathConfirmed, Transitioned: true}, nil
			})

		w := s.do(http.MethodPost, "/admin/wills/"+string(ownerAddr)+"/confirm-death", nil, asOperator())

		s.Equal(http.StatusOK, w.Code)
		var got models.ConfirmationOutcome
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
		s.True(got.Transitioned)
	})

	s.Run("skipped asset distribution is a 200", func() {
		s.svc.EXPECT().DistributeAsset(gomock.Any(), ownerAddr, id.AssetID(3)).
			Return(models.AssetDistributionOutcome{Skipped: true, Reason: models.ReasonProbateNotGranted}, nil)

		w := s.do(http.MethodPost, "/admin/wills/"+string(ownerAddr)+"/assets/3/distribute", nil, asOperator())

		s.Equal(http.StatusOK, w.Code)
		var got models.AssetDistributionOutcome
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
		s.True(got.Skipped)
		s.Nil(got.Proof)
	})

	s.Run("distribute in wrong state conflicts", func() {
		s.svc.EXPECT().DistributeDigitalAssets(gomock.Any(), ownerAddr).
			Return(nil, dErrors.New(dErrors.CodeInvalidState, "grant of probate not confirmed"))

		w := s.do(http.MethodPost, "/admin/wills/"+string(ownerAddr)+"/distribute", nil, asOperator())
		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("list wills by state", func() {
		s.svc.EXPECT().ListWillsByState(gomock.Any(), models.StateGrantOfProbateConfirmed).
			Return([]*models.Will{testWill()}, nil)

		w := s.do(http.MethodGet, "/admin/wills?state=GrantOfProbateConfirmed", nil, asOperator())

		s.Equal(http.StatusOK, w.Code)
		var got WillListResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
		s.Len(got.Wills, 1)
	})

	s.Run("unknown state filter", func() {
		w := s.do(http.MethodGet, "/admin/wills?state=Dormant", nil, asOperator())
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func TestInternalErrorsDoNotLeak(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), adminToken)
	r := chi.NewRouter()
	h.Register(r)

	svc.EXPECT().GetWillState(gomock.Any(), ownerAddr).
		Return(models.State(""), dErrors.New(dErrors.CodeInternal, "postgres: connection refused"))

	req := httptest.NewRequest(http.MethodGet, "/wills/"+string(ownerAddr)+"/state", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "postgres")
}

func TestOptionalCallerPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), adminToken)
	r := chi.NewRouter()
	h.Register(r)

	svc.EXPECT().GetAsset(gomock.Any(), id.AssetID(1)).
		DoAndReturn(func(ctx context.Context, assetID id.AssetID) (*models.PhysicalAsset, error) {
			assert.Equal(t, aliceAddr, requestcontext.Caller(ctx))
			return &models.PhysicalAsset{ID: assetID, Owner: ownerAddr}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/assets/1", nil)
	req.Header.Set(caller.HeaderCallerID, string(aliceAddr))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
