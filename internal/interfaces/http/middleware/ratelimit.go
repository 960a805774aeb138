package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/infrastructure/ratelimit"
	"github.com/ilim-academy/website/internal/shared/constants"
	"github.com/ilim-academy/website/internal/shared/logger"
)

// RateLimiter limits requests per client IP using a shared ratelimit.RateLimiter
// (Redis when configured, in-process otherwise).
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	config  ratelimit.RateLimitConfig
	scope   string
	logger  logger.Interface
}

// NewRateLimiter creates a limiter middleware. scope separates the counters of
// different route groups.
func NewRateLimiter(limiter ratelimit.RateLimiter, config ratelimit.RateLimitConfig, scope string, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		config:  config,
		scope:   scope,
		logger:  logger,
	}
}

// Limit returns a Gin middleware that enforces the limit; onLimit renders the
// 429 response.
func (rl *RateLimiter) Limit(onLimit Rejector) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.scope + ":" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.config)
		if err != nil {
			// If the store is unavailable, allow the request to avoid blocking all traffic
			rl.logger.Ctx(c.Request.Context()).Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			rl.logger.Ctx(c.Request.Context()).Infow("rate limit exceeded", "scope", rl.scope, "client_ip", c.ClientIP())
			reject(c, onLimit, http.StatusTooManyRequests, constants.ErrMsgRateLimited)
			return
		}

		c.Next()
	}
}
