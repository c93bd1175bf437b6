package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"testament/internal/registry/handler/mocks"
	"testament/internal/registry/models"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	tu "testament/pkg/testutil"
)

const (
	deceased   = id.NationalID("S7654321B")
	adminToken = "operator-secret"
)

//go:generate mockgen -source=handler.go -destination=mocks/registry-mocks.go -package=mocks Service
type RegistryHandlerSuite struct {
	suite.Suite
	svc    *mocks.MockService
	router chi.Router
}

func TestRegistryHandlerSuite(t *testing.T) {
	suite.Run(t, new(RegistryHandlerSuite))
}

func (s *RegistryHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.svc = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.svc, slog.New(slog.NewTextHandler(io.Discard, nil)), adminToken).Register(s.router)
}

func (s *RegistryHandlerSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *RegistryHandlerSuite) TestConfirmDeath() {
	s.Run("confirmed", func() {
		s.svc.EXPECT().ConfirmDeath(gomock.Any(), deceased).Return(true, nil)
		w := s.get("/api/confirmDeath/s7654321b")

		s.Equal(http.StatusOK, w.Code)
		var got ConfirmResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
		s.True(got.Confirmed)
		s.Contains(got.Result, "S7654321B")
	})

	s.Run("no record is 404", func() {
		s.svc.EXPECT().ConfirmDeath(gomock.Any(), deceased).Return(false, nil)
		w := s.get("/api/confirmDeath/S7654321B")
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("malformed national id", func() {
		w := s.get("/api/confirmDeath/a-b")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *RegistryHandlerSuite) TestConfirmGrant() {
	s.svc.EXPECT().ConfirmGrant(gomock.Any(), deceased).Return(true, nil)
	w := s.get("/api/confirmGrantOfProbate/S7654321B")
	s.Equal(http.StatusOK, w.Code)
}

func (s *RegistryHandlerSuite) TestListsToday() {
	s.svc.EXPECT().DeathsToday(gomock.Any()).Return([]models.DeathRecord{{NationalID: deceased}}, nil)
	w := s.get("/api/getAllDeathToday")
	s.Equal(http.StatusOK, w.Code)
	var deaths DeathListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &deaths))
	s.Len(deaths.Result, 1)

	s.svc.EXPECT().GrantsToday(gomock.Any()).Return([]models.ProbateRecord{}, nil)
	w = s.get("/api/getAllGrantOfProbateToday")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"result":[]}`, w.Body.String())
}

func (s *RegistryHandlerSuite) TestGetCertificate() {
	dir := s.T().TempDir()
	pdf := filepath.Join(dir, "S7654321B.pdf")
	s.Require().NoError(os.WriteFile(pdf, []byte("%PDF-1.4 fake"), 0o600))

	s.Run("streams the file", func() {
		s.svc.EXPECT().CertificatePath(gomock.Any(), deceased).Return(pdf, nil)
		w := s.get("/api/getCertificate/S7654321B")

		s.Equal(http.StatusOK, w.Code)
		s.Equal("application/pdf", w.Header().Get("Content-Type"))
		s.Contains(w.Header().Get("Content-Disposition"), "death_certificate.pdf")
		s.Equal("%PDF-1.4 fake", w.Body.String())
	})

	s.Run("forbidden path", func() {
		s.svc.EXPECT().CertificatePath(gomock.Any(), deceased).
			Return("", dErrors.New(dErrors.CodeForbidden, "death certificate path escapes the data directory"))
		w := s.get("/api/getCertificate/S7654321B")
		s.Equal(http.StatusForbidden, w.Code)
	})
}

func (s *RegistryHandlerSuite) TestGetDeathRecord() {
	s.svc.EXPECT().GetDeath(gomock.Any(), deceased).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "no such death record"))
	w := s.get("/api/deaths/S7654321B")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RegistryHandlerSuite) TestRecordDeath() {
	body := RecordDeathRequest{
		NationalID:      "S7654321B",
		DeceasedName:    "Jane Doe",
		DateOfDeath:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		CertificateFile: "S7654321B.pdf",
	}
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	s.Run("requires admin token", func() {
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/deaths", bytes.NewReader(raw)))
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("stores the record", func() {
		s.svc.EXPECT().RecordDeath(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r models.DeathRecord) error {
				s.Equal(deceased, r.NationalID)
				s.Equal("Jane Doe", r.DeceasedName)
				return nil
			})
		req := tu.AsOperator(httptest.NewRequest(http.MethodPost, "/api/deaths", bytes.NewReader(raw)), adminToken)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("rejects traversal before the service", func() {
		bad := body
		bad.CertificateFile = "../x.pdf"
		raw, err := json.Marshal(bad)
		s.Require().NoError(err)
		req := tu.AsOperator(httptest.NewRequest(http.MethodPost, "/api/deaths", bytes.NewReader(raw)), adminToken)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}
