// Package client reaches the government registry on behalf of the will
// service and the relay, either over HTTP or in process.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"testament/internal/registry/models"
	"testament/internal/will/ports"
	id "testament/pkg/domain"
	"testament/pkg/platform/circuit"
)

const (
	registryDeath   = "death"
	registryProbate = "probate"
)

// HTTPClient calls a remote registry API. Each registry has its own circuit
// breaker so an outage of one does not block lookups in the other.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	breakers map[string]*circuit.Breaker
	retries  int
	backoff  time.Duration
	logger   *slog.Logger
}

type HTTPOption func(*HTTPClient)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) { h.http = c }
}

// WithRetries sets how many times a retryable failure is retried.
func WithRetries(n int, backoff time.Duration) HTTPOption {
	return func(h *HTTPClient) {
		h.retries = n
		h.backoff = backoff
	}
}

func WithLogger(logger *slog.Logger) HTTPOption {
	return func(h *HTTPClient) { h.logger = logger }
}

func WithBreakerOptions(opts ...circuit.Option) HTTPOption {
	return func(h *HTTPClient) {
		h.breakers = map[string]*circuit.Breaker{
			registryDeath:   circuit.New(registryDeath, opts...),
			registryProbate: circuit.New(registryProbate, opts...),
		}
	}
}

func NewHTTP(baseURL string, timeout time.Duration, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breakers: map[string]*circuit.Breaker{
			registryDeath:   circuit.New(registryDeath),
			registryProbate: circuit.New(registryProbate),
		},
		retries: 1,
		backoff: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// LookupDeath implements ports.DeathRegistry.
func (c *HTTPClient) LookupDeath(ctx context.Context, nationalID id.NationalID) (ports.RegistryMatch, error) {
	var r models.DeathRecord
	ok, err := c.get(ctx, registryDeath, "/api/deaths/"+url.PathEscape(nationalID.String()), &r)
	if err != nil || !ok {
		return ports.RegistryMatch{}, toDomain(err)
	}
	if r.DateOfDeath.IsZero() {
		return ports.RegistryMatch{}, toDomain(NewProviderError(ErrorBadData, registryDeath, "record has no date of death", nil))
	}
	return ports.RegistryMatch{Found: true, Date: r.DateOfDeath}, nil
}

// LookupGrant implements ports.ProbateRegistry. Unapproved grants are not a
// match.
func (c *HTTPClient) LookupGrant(ctx context.Context, nationalID id.NationalID) (ports.RegistryMatch, error) {
	var r models.ProbateRecord
	ok, err := c.get(ctx, registryProbate, "/api/grants/"+url.PathEscape(nationalID.String()), &r)
	if err != nil || !ok || !r.Approved {
		return ports.RegistryMatch{}, toDomain(err)
	}
	if r.DateGranted.IsZero() {
		return ports.RegistryMatch{}, toDomain(NewProviderError(ErrorBadData, registryProbate, "grant has no date", nil))
	}
	return ports.RegistryMatch{Found: true, Date: r.DateGranted}, nil
}

// DeathsToday lists the national ids with a death registered today.
func (c *HTTPClient) DeathsToday(ctx context.Context) ([]id.NationalID, error) {
	var resp struct {
		Result []models.DeathRecord `json:"result"`
	}
	if _, err := c.get(ctx, registryDeath, "/api/getAllDeathToday", &resp); err != nil {
		return nil, toDomain(err)
	}
	out := make([]id.NationalID, 0, len(resp.Result))
	for _, r := range resp.Result {
		out = append(out, r.NationalID)
	}
	return out, nil
}

// GrantsToday lists the national ids with an approved grant issued today.
func (c *HTTPClient) GrantsToday(ctx context.Context) ([]id.NationalID, error) {
	var resp struct {
		Result []models.ProbateRecord `json:"result"`
	}
	if _, err := c.get(ctx, registryProbate, "/api/getAllGrantOfProbateToday", &resp); err != nil {
		return nil, toDomain(err)
	}
	out := make([]id.NationalID, 0, len(resp.Result))
	for _, r := range resp.Result {
		if r.Approved {
			out = append(out, r.NationalID)
		}
	}
	return out, nil
}

// get decodes a 200 body into dest. A 404 is reported as ok=false with a
// nil error.
func (c *HTTPClient) get(ctx context.Context, registry, path string, dest any) (bool, error) {
	breaker := c.breakers[registry]
	if !breaker.Allow() {
		return false, NewProviderError(ErrorProviderOutage, registry, "circuit open", nil)
	}

	var (
		ok  bool
		err error
	)
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return false, NewProviderError(ErrorTimeout, registry, "context done before retry", ctx.Err())
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}
		ok, err = c.do(ctx, registry, path, dest)
		if err == nil || !IsRetryable(err) {
			break
		}
		c.logger.WarnContext(ctx, "registry call failed",
			"registry", registry,
			"attempt", attempt+1,
			"error", err,
		)
	}

	if err != nil && IsRetryable(err) {
		if _, change := breaker.RecordFailure(); change.Opened {
			c.logger.ErrorContext(ctx, "registry circuit opened", "registry", registry)
		}
		return false, err
	}
	if _, change := breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "registry circuit closed", "registry", registry)
	}
	return ok, err
}

func (c *HTTPClient) do(ctx context.Context, registry, path string, dest any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, NewProviderError(ErrorInternal, registry, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, classifyTransport(registry, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return false, NewProviderError(ErrorRateLimited, registry, "rate limited", nil)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return false, NewProviderError(ErrorAuthentication, registry, resp.Status, nil)
	case resp.StatusCode >= 500:
		return false, NewProviderError(ErrorProviderOutage, registry, resp.Status, nil)
	case resp.StatusCode != http.StatusOK:
		return false, NewProviderError(ErrorContractMismatch, registry, "unexpected status "+resp.Status, nil)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(dest); err != nil {
		return false, NewProviderError(ErrorBadData, registry, "decode response", err)
	}
	return true, nil
}

func classifyTransport(registry string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewProviderError(ErrorTimeout, registry, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewProviderError(ErrorTimeout, registry, "request timed out", err)
	}
	return NewProviderError(ErrorProviderOutage, registry, fmt.Sprintf("request failed: %v", err), err)
}
