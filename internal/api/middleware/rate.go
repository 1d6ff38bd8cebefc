package middleware

import (
	"net/http"
	"strconv"

	"github.com/formgate/formgate/internal/api/dto/common"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// BurstLimitConfig defines the in-process token-bucket limiter that sits in
// front of the distributed per-IP limiter. It only smooths bursts against a
// single instance; the real quota lives in the counter store.
type BurstLimitConfig struct {
	// Requests per second
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// BurstLimit creates the burst-protection middleware.
func BurstLimit(config BurstLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests,
				common.NewRateLimitResponse("Too many requests. Please try again later.", 1))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RPS))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		c.Next()
	}
}
