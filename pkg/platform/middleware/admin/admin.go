package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	request "testament/pkg/platform/middleware/request"
	"testament/pkg/requestcontext"
)

// HeaderAdminToken carries the operator's shared secret.
const HeaderAdminToken = "X-Admin-Token"

// RequireAdminToken admits only the platform operator. An empty expected
// token rejects every request.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(HeaderAdminToken)
			// Use constant-time comparison to prevent timing attacks
			if expectedToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				ctx := r.Context()
				requestID := request.GetRequestID(ctx)
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", requestID,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithOperator(r.Context())))
		})
	}
}
