package ratelimit

import (
	"net"
	"net/http"
	"strconv"

	id "testament/pkg/domain"
	"testament/pkg/platform/httputil"
	"testament/pkg/platform/middleware/caller"
)

// ExceededResponse is the 429 body.
type ExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

// Middleware applies the limiter to every request. GET and HEAD spend the
// read budget; everything else spends the write budget.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		class := ClassWrite
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			class = ClassRead
		}

		res, err := l.Check(ctx, clientKey(r), class)
		if err != nil {
			l.logger.ErrorContext(ctx, "rate limit check failed, allowing request", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
		if !res.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfter))
			httputil.WriteJSON(w, http.StatusTooManyRequests, ExceededResponse{
				Error:      "rate_limit_exceeded",
				Message:    "Too many requests. Please try again later.",
				RetryAfter: res.RetryAfter,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if who, err := id.ParseIdentity(r.Header.Get(caller.HeaderCallerID)); err == nil {
		return "caller:" + who.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
