// Package apikey provides the static API key middleware guarding the
// symbol-scoped endpoints.
package apikey

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderName is the request header carrying the caller's API key.
const HeaderName = "X-API-Key"

// Required returns a Gin middleware that rejects requests whose API key
// header does not match the configured key. The expected key never appears
// in any response.
func Required(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Server misconfiguration: no key configured at all
		if key == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status": false,
				"error":  "server misconfigured",
			})
			return
		}

		// 2. Constant-time compare so the key cannot be probed byte by byte
		got := c.GetHeader(HeaderName)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": false,
				"error":  "invalid api key",
			})
			return
		}

		c.Next()
	}
}
