// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services read them. Keeping the package free
// of net/http lets services, workers and the CLI share the same accessors.
//
// Usage in services (read values):
//
//	caller := requestcontext.Caller(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithCaller(ctx, "0xabc")
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "testament/pkg/domain"
)

type (
	callerKey      struct{}
	operatorKey    struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

var (
	ContextKeyCaller      = callerKey{}
	ContextKeyOperator    = operatorKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// -----------------------------------------------------------------------------
// Caller
// -----------------------------------------------------------------------------

// Caller returns the identity acting on the request, or the empty identity.
func Caller(ctx context.Context) id.Identity {
	if caller, ok := ctx.Value(ContextKeyCaller).(id.Identity); ok {
		return caller
	}
	return ""
}

// WithCaller injects the acting identity into the context.
func WithCaller(ctx context.Context, caller id.Identity) context.Context {
	return context.WithValue(ctx, ContextKeyCaller, caller)
}

// IsOperator reports whether the request was authenticated as the platform
// operator (admin token). Operators drive lifecycle and distribution.
func IsOperator(ctx context.Context) bool {
	op, _ := ctx.Value(ContextKeyOperator).(bool)
	return op
}

// WithOperator marks the context as acting for the platform operator.
func WithOperator(ctx context.Context) context.Context {
	return context.WithValue(ctx, ContextKeyOperator, true)
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
// Useful for:
//   - Service unit tests that don't run the full HTTP middleware chain
//   - Relay batches that need one consistent "today"
//   - CLI commands
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
