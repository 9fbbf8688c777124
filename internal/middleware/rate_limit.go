package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"support-router/pkg/response"
)

const (
	SessionHeader = "X-Session-ID"

	defaultTrackedKeys = 1000
	limiterTTL         = 5 * time.Minute
)

// rateLimiter keeps one token bucket per caller, evicting idle callers.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin, maxKeys int) *rateLimiter {
	if maxKeys <= 0 {
		maxKeys = defaultTrackedKeys
	}
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxKeys, nil, limiterTTL),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

func (rl *rateLimiter) allow(key string) bool {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}

// sessionBody is the part of a JSON request body that identifies the caller.
type sessionBody struct {
	SessionID string `json:"session_id"`
}

// sessionKey picks the limiter key: the session_id of a JSON body, then the
// session header, then the client IP. The body stays cached on the context,
// so handlers must bind it with ShouldBindBodyWith.
func sessionKey(c *gin.Context) string {
	if c.ContentType() == binding.MIMEJSON {
		var body sessionBody
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err == nil && body.SessionID != "" {
			return body.SessionID
		}
	}
	if id := c.GetHeader(SessionHeader); id != "" {
		return id
	}
	return c.ClientIP()
}

// RateLimit throttles callers per session.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil {
			c.Next()
			return
		}

		key := sessionKey(c)
		if !m.limiter.allow(key) {
			m.l.Warnf(c.Request.Context(), "middleware.RateLimit: limit exceeded for %s", key)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
