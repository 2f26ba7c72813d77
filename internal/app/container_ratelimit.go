package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-courier-tracking/internal/config"
	"service-courier-tracking/internal/http/middleware/ratelimit"
	"service-courier-tracking/internal/logx"
)

type rateLimitIn struct {
	dig.In

	Config  *config.Config
	Logger  logx.Logger
	Clock   ratelimit.Clock
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
}

// newRateLimitMiddleware builds the per-caller limiter. When rate limiting
// is disabled every request is let through.
func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	var limiter ratelimit.Limiter = ratelimit.NopLimiter{}
	if rl := in.Config.RateLimit; rl.Enabled {
		limiter = ratelimit.NewTokenBucketLimiter(in.Clock, ratelimit.Config{
			Rate:       rl.Rate,
			Burst:      rl.Burst,
			TTL:        rl.TTL,
			MaxBuckets: rl.MaxBuckets,
		})
	}
	return ratelimit.New(in.Logger, in.Counter, limiter)
}
