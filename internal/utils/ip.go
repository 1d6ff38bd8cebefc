package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetClientIP extracts the client IP for rate-limit keying. The direct
// connection address wins; proxy headers are fallbacks only, and when
// nothing usable is present the sentinel "unknown" is returned so the
// limiter can fail open on it.
func GetClientIP(c *gin.Context) string {
	if remote := c.Request.RemoteAddr; remote != "" {
		if host, _, err := net.SplitHostPort(remote); err == nil && host != "" {
			return host
		}
		return remote
	}

	// X-Forwarded-For is a comma-separated list; the first entry is the
	// original client.
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}

	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	return "unknown"
}
