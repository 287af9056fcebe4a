// internal/interfaces/http/middleware/request_id.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestIDKey is the gin context key holding the request id
const ContextRequestIDKey = "request_id"

// RequestID tags each request with a unique id, honoring an incoming
// X-Request-ID header when present
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(ContextRequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}
