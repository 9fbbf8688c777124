package middleware

import (
	"support-router/config"
	"support-router/pkg/log"
)

type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

// New builds the shared middleware set. A disabled rate limit config leaves
// RateLimit as a pass-through.
func New(l log.Logger, rl config.RateLimitConfig) Middleware {
	mw := Middleware{l: l}
	if rl.Enabled && rl.RequestsPerMin > 0 {
		mw.limiter = newRateLimiter(rl.RequestsPerMin, rl.MaxTrackedUsers)
	}
	return mw
}
