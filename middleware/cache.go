package middleware

import "github.com/gin-gonic/gin"

// CacheControlMiddleware marks a response cacheable; used on the static
// puzzle catalog.
func CacheControlMiddleware(maxAgeSeconds string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age="+maxAgeSeconds)
		c.Next()
	}
}
