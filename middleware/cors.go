package middleware

import (
	"net/http"

	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware answers preflight requests and sets the allow headers.
// The allowed origin comes from CORS_ORIGIN and defaults to any.
func CORSMiddleware() gin.HandlerFunc {
	origin := utils.GetEnvAsString("CORS_ORIGIN", "*")
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
