/* ratelimit.go
 * In-process request throttling for the callable endpoints, one token bucket
 * per authenticated caller. This is separate from the per-user counter
 * documents maintained by the triggers: those record activity, this guards
 * the HTTP surface.
 */

package web

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

const (
	callerRatePerSecond = 1
	callerBurst         = 5
)

type callerLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newCallerLimiters() *callerLimiters {
	return &callerLimiters{limiters: make(map[string]*rate.Limiter)}
}

func (c *callerLimiters) allow(uid string) bool {
	c.mu.Lock()
	limiter, ok := c.limiters[uid]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(callerRatePerSecond), callerBurst)
		c.limiters[uid] = limiter
	}
	c.mu.Unlock()

	return limiter.Allow()
}

// throttle rejects callers exceeding their request budget. Runs after
// authentication so the bucket key is the verified uid.
func (s *Server) throttle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())
		if !s.limiters.allow(user.UID) {
			writeError(w, http.StatusTooManyRequests, "resource-exhausted", "Too many requests, slow down")
			return
		}
		next(w, r)
	}
}
