// Package caller resolves the acting identity of a request.
//
// Authentication is out of scope for this service: the identity in
// X-Caller-ID is trusted as asserted by the gateway in front of it.
package caller

import (
	"log/slog"
	"net/http"

	id "testament/pkg/domain"
	request "testament/pkg/platform/middleware/request"
	"testament/pkg/requestcontext"
)

const HeaderCallerID = "X-Caller-ID"

// RequireCaller rejects requests without a valid X-Caller-ID.
func RequireCaller(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			caller, err := id.ParseIdentity(r.Header.Get(HeaderCallerID))
			if err != nil {
				requestID := request.GetRequestID(ctx)
				logger.WarnContext(ctx, "rejected request - missing or invalid caller",
					"error", err,
					"request_id", requestID,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, err = w.Write([]byte(`{"error":"unauthorized","error_description":"Missing or invalid X-Caller-ID header"}`))
				if err != nil {
					logger.ErrorContext(ctx, "failed to write unauthorized response",
						"error", err,
						"request_id", requestID,
					)
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithCaller(ctx, caller)))
		})
	}
}

// OptionalCaller records X-Caller-ID when it parses and otherwise passes the
// request through anonymously.
func OptionalCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if caller, err := id.ParseIdentity(r.Header.Get(HeaderCallerID)); err == nil {
			r = r.WithContext(requestcontext.WithCaller(r.Context(), caller))
		}
		next.ServeHTTP(w, r)
	})
}
