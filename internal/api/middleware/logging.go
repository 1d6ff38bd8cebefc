package middleware

import (
	"time"

	"github.com/formgate/formgate/internal/logging"
	"github.com/formgate/formgate/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs each completed request through the application logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logging.GetLogger().LogHTTPRequest(
			method,
			path,
			utils.GetClientIP(c),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
