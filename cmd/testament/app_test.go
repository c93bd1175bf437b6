package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"testament/internal/platform/config"
	"testament/internal/platform/logger"
	"testament/internal/relay"
)

const (
	owner      = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	alice      = "0xdddddddddddddddddddddddddddddddddddddddd"
	bob        = "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"
	deceased   = "S7654321B"
	adminToken = "operator-secret"
)

// AppSuite drives the composed service over HTTP with in-memory backends
// and the in-process registry.
type AppSuite struct {
	suite.Suite
	app    *app
	server *httptest.Server
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}

func (s *AppSuite) SetupSuite() {
	cfg := config.Default()
	cfg.Server.AdminToken = adminToken
	cfg.Registry.SQLitePath = ""
	cfg.Registry.DataDir = s.T().TempDir()

	a, err := newApp(context.Background(), cfg, logger.Discard())
	s.Require().NoError(err)
	s.app = a
	s.server = httptest.NewServer(a.router(nil))
}

func (s *AppSuite) TearDownSuite() {
	s.server.Close()
	s.NoError(s.app.Close())
}

func (s *AppSuite) do(method, path string, body any, headers map[string]string) (int, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func as(caller string) map[string]string {
	return map[string]string{"X-Caller-ID": caller}
}

func operator() map[string]string {
	return map[string]string{"X-Admin-Token": adminToken}
}

func (s *AppSuite) TestEstateLifecycle() {
	status, _ := s.do(http.MethodGet, "/healthz", nil, nil)
	s.Equal(http.StatusOK, status)

	status, body := s.do(http.MethodPost, "/wills", map[string]string{"national_id": deceased}, as(owner))
	s.Require().Equal(http.StatusCreated, status, body)
	s.Equal("InCreation", body["state"])

	status, _ = s.do(http.MethodPost, "/wills/"+owner+"/fund", map[string]int64{"amount": 1000}, as(bob))
	s.Require().Equal(http.StatusOK, status)

	status, body = s.do(http.MethodPut, "/wills/"+owner+"/residual", map[string]string{"beneficiary": bob}, as(owner))
	s.Require().Equal(http.StatusOK, status, body)

	status, body = s.do(http.MethodPost, "/wills/"+owner+"/beneficiaries", map[string]any{
		"beneficiaries": []string{alice},
		"shares":        []int{60},
	}, as(owner))
	s.Require().Equal(http.StatusOK, status, body)

	s.Run("no registry record yet", func() {
		status, body := s.do(http.MethodPost, "/admin/wills/"+owner+"/confirm-death", nil, operator())
		s.Require().Equal(http.StatusOK, status)
		s.Equal(false, body["transitioned"])
	})

	s.Require().NoError(s.app.registry.Seed(context.Background()))

	status, body = s.do(http.MethodGet, "/api/confirmDeath/"+deceased, nil, nil)
	s.Require().Equal(http.StatusOK, status, body)
	s.Equal(true, body["confirmed"])

	// The relay picks up today's records and, with auto-distribution on,
	// settles the estate.
	r := relay.New(s.app.wills, s.app.registryLookup, relay.WithAutoDistribute(true))
	r.Reconcile(context.Background())

	status, body = s.do(http.MethodGet, "/wills/"+owner+"/state", nil, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Equal("Closed", body["state"])

	status, body = s.do(http.MethodGet, "/balances/"+alice, nil, as(alice))
	s.Require().Equal(http.StatusOK, status)
	s.Equal(float64(600), body["balance"])

	status, _ = s.do(http.MethodGet, "/balances/"+alice, nil, as(bob))
	s.Equal(http.StatusForbidden, status)

	status, _ = s.do(http.MethodPost, "/admin/wills/"+owner+"/distribute-estate", nil, operator())
	s.Equal(http.StatusConflict, status)
}

func (s *AppSuite) TestAdminRequiresToken() {
	status, _ := s.do(http.MethodGet, "/admin/wills/?state=InCreation", nil, nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *AppSuite) TestRateLimitHeaders() {
	req, err := http.NewRequest(http.MethodGet, s.server.URL+"/healthz", nil)
	s.Require().NoError(err)
	req.Header.Set("X-Caller-ID", alice)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal("300", resp.Header.Get("X-RateLimit-Limit"))
	s.NotEmpty(resp.Header.Get("X-RateLimit-Remaining"))
}
