package middleware

import (
	"net"
	"net/http"

	"github.com/mtakagi/tasklist-api/internal/api/shared"
	"github.com/mtakagi/tasklist-api/internal/ratelimit"
)

// Throttle limits each client to max requests per limiter window on the
// routes it wraps. It holds its own Limiter instance and must not share it
// with the login attempt limiter; the two track different things over
// different windows.
type Throttle struct {
	limiter *ratelimit.Limiter
	max     int
}

// NewThrottle creates a Throttle allowing max requests per window of the
// given limiter.
func NewThrottle(limiter *ratelimit.Limiter, max int) *Throttle {
	return &Throttle{limiter: limiter, max: max}
}

// Limit rejects the request with 429 once the client's request count
// reaches max within the current window.
func (t *Throttle) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := ClientKey(r)
		if t.limiter.TooManyAttempts(key, t.max) {
			shared.RespondWithError(w, r, http.StatusTooManyRequests, "Too Many Attempts.")
			return
		}
		t.limiter.Hit(key)

		next.ServeHTTP(w, r)
	})
}

// ClientKey derives the rate-limit key for a request: the client IP
// without the port. Behind chi's RealIP middleware this reflects
// X-Forwarded-For / X-Real-IP when present.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
