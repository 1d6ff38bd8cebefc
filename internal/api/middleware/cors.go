package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS sets the fixed permissive header set on every response and
// short-circuits preflight requests with an empty 200. The allowed origin
// defaults to "*"; deployments narrow it via configuration.
func CORS(allowedOrigin string) gin.HandlerFunc {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,X-Amz-Date,Authorization,X-Api-Key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST,OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
