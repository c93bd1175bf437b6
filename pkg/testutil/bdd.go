package testutil

import (
	"net/http"
	"testing"

	"testament/pkg/platform/middleware/admin"
	"testament/pkg/platform/middleware/caller"
)

// Given, When, Then and And name nested subtests after the step they run,
// so a failure reads as "Given a caller who spent the write budget/When
// they write again/Then they get 429".
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Given", desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "When", desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Then", desc, fn)
}

// And continues the previous step at the same level.
func And(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "And", desc, fn)
}

func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(keyword+" "+desc, fn)
}

// AsCaller marks req as sent on behalf of identity, the way the gateway
// forwards an authenticated wallet address.
func AsCaller(req *http.Request, identity string) *http.Request {
	req.Header.Set(caller.HeaderCallerID, identity)
	return req
}

// AsOperator attaches the operator's admin token to req.
func AsOperator(req *http.Request, token string) *http.Request {
	req.Header.Set(admin.HeaderAdminToken, token)
	return req
}
