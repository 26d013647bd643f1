package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "requestID"
)

// RequestID echoes the caller's X-Request-Id or assigns a fresh uuid, so
// every response and log line for a generation can be correlated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the request id assigned by RequestID, or "".
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
