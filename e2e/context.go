package e2e

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TestContext carries per-scenario state: the parties in play and the last
// response. Parties are named by role in feature files and get fresh
// identities per scenario so runs never collide.
type TestContext struct {
	BaseURL    string
	AdminToken string
	client     *http.Client

	identities  map[string]string
	nationalIDs map[string]string

	lastStatus int
	lastBody   []byte
	lastHeader http.Header
}

func NewTestContext(baseURL, adminToken string) *TestContext {
	return &TestContext{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		AdminToken: adminToken,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset clears scenario state.
func (tc *TestContext) Reset() {
	tc.identities = map[string]string{}
	tc.nationalIDs = map[string]string{}
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.lastHeader = nil
}

// Identity returns the scenario's identity for role.
func (tc *TestContext) Identity(role string) string {
	if v, ok := tc.identities[role]; ok {
		return v
	}
	v := "0x" + randomHex(20)
	tc.identities[role] = v
	return v
}

// NationalID returns the scenario's national id for role.
func (tc *TestContext) NationalID(role string) string {
	if v, ok := tc.nationalIDs[role]; ok {
		return v
	}
	v := "E2E" + strings.ToUpper(randomHex(6))
	tc.nationalIDs[role] = v
	return v
}

func (tc *TestContext) GetAdminToken() string {
	return tc.AdminToken
}

// Do sends a JSON request and records the response. Only transport failures
// are errors; status codes are checked by assertion steps.
func (tc *TestContext) Do(ctx context.Context, method, path string, headers map[string]string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, tc.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastHeader = resp.Header
	tc.lastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	return nil
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

func (tc *TestContext) GetLastResponseHeader(name string) string {
	return tc.lastHeader.Get(name)
}

// GetResponseField returns a top-level field of the last JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var body map[string]any
	if err := json.Unmarshal(tc.lastBody, &body); err != nil {
		return nil, fmt.Errorf("decode response %q: %w", string(tc.lastBody), err)
	}
	v, ok := body[field]
	if !ok {
		return nil, fmt.Errorf("field %q not in response %s", field, string(tc.lastBody))
	}
	return v, nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
