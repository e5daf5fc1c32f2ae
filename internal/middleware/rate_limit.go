package middleware

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
	"github.com/yigit/schooldirectory/internal/pkg/logger"
	"github.com/yigit/schooldirectory/internal/pkg/ratelimit"
)

// ClassifyFunc picks the rate class of a request
type ClassifyFunc func(c *gin.Context) ratelimit.Class

// FixedClass always returns class
func FixedClass(class ratelimit.Class) ClassifyFunc {
	return func(*gin.Context) ratelimit.Class { return class }
}

// ListOrSearch classifies list endpoints: requests carrying a non-blank search term
// are charged to the tighter search budget.
func ListOrSearch(c *gin.Context) ratelimit.Class {
	if strings.TrimSpace(c.Query("search")) != "" {
		return ratelimit.ClassSearch
	}
	return ratelimit.ClassList
}

// RateLimit rejects requests over the budget of their class with 429. A nil
// limiter disables the check.
func RateLimit(limiter ratelimit.Limiter, classify ClassifyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		class := classify(c)
		decision, err := limiter.Allow(c.Request.Context(), class, c.ClientIP())
		if err != nil {
			logger.Warn().Err(err).Str("class", string(class)).Msg("Rate limiter unavailable, allowing request")
		}

		if decision.Limit >= 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		}

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrRateLimited,
				"rate limit exceeded for "+string(class)+" requests, retry in "+strconv.Itoa(retryAfter)+"s"))
			return
		}

		c.Next()
	}
}
