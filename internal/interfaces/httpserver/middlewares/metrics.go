package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"chapter-api/internal/infrastructure/metrics"
)

// MetricsMiddleware records HTTP request metrics
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = metrics.NormalizeEndpoint(c.Request.URL.Path)
		}

		metrics.RecordRequest(c.Request.Method, endpoint, status, duration)
	}
}
