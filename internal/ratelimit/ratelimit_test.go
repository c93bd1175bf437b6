package ratelimit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"testament/internal/ratelimit"
	"testament/internal/ratelimit/store"
	tu "testament/pkg/testutil"
)

const (
	alice = "0x1111111111111111111111111111111111111111"
	bob   = "0x2222222222222222222222222222222222222222"
)

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration, time.Time) (ratelimit.Result, error) {
	return ratelimit.Result{}, errors.New("redis down")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newLimited(t *testing.T, s ratelimit.Store) (http.Handler, *ratelimit.Metrics) {
	t.Helper()
	m := ratelimit.NewMetricsWithRegisterer(prometheus.NewRegistry())
	l := ratelimit.New(s, ratelimit.Limits{Window: time.Minute, Read: 3, Write: 1}, ratelimit.WithMetrics(m))
	return l.Middleware(okHandler()), m
}

func TestMiddleware(t *testing.T) {
	tu.Given(t, "a caller within budget", func(t *testing.T) {
		h, m := newLimited(t, store.NewInMemory())

		tu.When(t, "they read", func(t *testing.T) {
			rr := tu.DoRequest(h, tu.AsCaller(tu.NewRequest(t, http.MethodGet, "/wills/"+alice), alice))

			tu.Then(t, "the request passes with budget headers", func(t *testing.T) {
				tu.AssertStatus(t, rr, http.StatusOK)
				assert.Equal(t, "3", rr.Header().Get("X-RateLimit-Limit"))
				assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Remaining"))
				assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Reset"))
				assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("read", "allowed")))
			})
		})
	})

	tu.Given(t, "a caller who spent the write budget", func(t *testing.T) {
		h, m := newLimited(t, store.NewInMemory())
		body := map[string]any{"beneficiary": bob, "percentage": 50}
		first := tu.DoRequest(h, tu.AsCaller(tu.NewJSONRequest(t, http.MethodPost, "/wills/"+alice+"/beneficiaries", body), alice))
		tu.AssertStatus(t, first, http.StatusOK)

		tu.When(t, "they write again", func(t *testing.T) {
			rr := tu.DoRequest(h, tu.AsCaller(tu.NewJSONRequest(t, http.MethodPost, "/wills/"+alice+"/beneficiaries", body), alice))

			tu.Then(t, "they get 429 with Retry-After", func(t *testing.T) {
				tu.AssertStatus(t, rr, http.StatusTooManyRequests)
				assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))
				assert.NotEmpty(t, rr.Header().Get("Retry-After"))
				resp := tu.UnmarshalResponse[ratelimit.ExceededResponse](t, rr)
				assert.Equal(t, "rate_limit_exceeded", resp.Error)
				assert.Positive(t, resp.RetryAfter)
				assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("write", "rejected")))
			})
		})

		tu.When(t, "they read", func(t *testing.T) {
			rr := tu.DoRequest(h, tu.AsCaller(tu.NewRequest(t, http.MethodGet, "/wills/"+alice), alice))

			tu.Then(t, "the read budget is separate", func(t *testing.T) {
				tu.AssertStatus(t, rr, http.StatusOK)
			})
		})

		tu.When(t, "another caller writes", func(t *testing.T) {
			rr := tu.DoRequest(h, tu.AsCaller(tu.NewJSONRequest(t, http.MethodPost, "/wills/"+bob+"/beneficiaries", body), bob))

			tu.Then(t, "their budget is untouched", func(t *testing.T) {
				tu.AssertStatus(t, rr, http.StatusOK)
			})
		})
	})

	tu.Given(t, "anonymous requests", func(t *testing.T) {
		h, _ := newLimited(t, store.NewInMemory())
		send := func(remote string) int {
			req := tu.NewJSONRequest(t, http.MethodPost, "/api/confirmDeath", nil)
			req.RemoteAddr = remote
			return tu.DoRequest(h, req).Code
		}

		tu.Then(t, "they are keyed by client IP", func(t *testing.T) {
			assert.Equal(t, http.StatusOK, send("10.0.0.1:5000"))
			assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5001"))
			assert.Equal(t, http.StatusOK, send("10.0.0.2:5000"))
		})
	})

	tu.Given(t, "an operator without a caller identity", func(t *testing.T) {
		h, _ := newLimited(t, store.NewInMemory())
		confirm := func() *httptest.ResponseRecorder {
			req := tu.AsOperator(tu.NewJSONRequest(t, http.MethodPost, "/api/confirmDeath", nil), "operator-secret")
			req.RemoteAddr = "10.0.0.9:4000"
			return tu.DoRequest(h, req)
		}

		tu.Then(t, "the first write passes", func(t *testing.T) {
			tu.AssertStatus(t, confirm(), http.StatusOK)
		})
		tu.And(t, "the next one from the same address is limited", func(t *testing.T) {
			tu.AssertStatus(t, confirm(), http.StatusTooManyRequests)
		})
	})

	tu.Given(t, "a failing store", func(t *testing.T) {
		h, m := newLimited(t, failingStore{})

		tu.When(t, "a request arrives", func(t *testing.T) {
			rr := tu.DoRequest(h, tu.NewRequest(t, http.MethodGet, "/healthz"))

			tu.Then(t, "the limiter fails open", func(t *testing.T) {
				tu.AssertStatus(t, rr, http.StatusOK)
				assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
				assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("read", "error")))
			})
		})
	})
}
