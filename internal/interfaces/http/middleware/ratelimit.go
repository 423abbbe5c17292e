package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planhaus/planhaus/internal/infrastructure/ratelimit"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// RateLimit throttles requests per client IP under the given scope. The
// limiter is shared across instances through Redis; when it is unreachable
// requests pass through rather than taking the whole API down.
func RateLimit(limiter ratelimit.RateLimiter, scope string, cfg ratelimit.Config, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), key, cfg)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err, "scope", scope)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
