package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assetflow/assetflow/internal/infrastructure/ratelimit"
	"github.com/assetflow/assetflow/internal/shared/logger"
	"github.com/assetflow/assetflow/internal/shared/utils"
)

// Limiter is satisfied by ratelimit.RedisRateLimiter.
type Limiter interface {
	Allow(ctx context.Context, key string, policy ratelimit.Policy) (bool, error)
}

// RateLimiter limits requests per client IP within one key scope.
type RateLimiter struct {
	limiter Limiter
	scope   string
	policy  ratelimit.Policy
	logger  logger.Interface
}

func NewRateLimiter(limiter Limiter, scope string, policy ratelimit.Policy, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		policy:  policy,
		logger:  log,
	}
}

// Limit returns a Gin middleware that enforces the policy per client IP.
// When Redis is unavailable the request is let through.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.scope + ":" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.policy)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request",
				"scope", rl.scope,
				"error", err,
			)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
