package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reelpop-inc/reelpop/internal/infrastructure/ratelimit"
	"github.com/reelpop-inc/reelpop/internal/shared/constants"
	"github.com/reelpop-inc/reelpop/internal/shared/utils"
)

// RateLimit enforces the registry rule for category per client IP.
func RateLimit(registry *ratelimit.Registry, category ratelimit.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := registry.Check(c.Request.Context(), category, c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header(constants.HeaderRetryAfter, strconv.Itoa(seconds))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
