package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dakshpokar/UnifiedWebInsights/pkg/metrics"
)

// MetricsMiddleware records Prometheus metrics for every request. The
// route template (not the raw path) labels the endpoint so evaluation
// ids do not explode cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.RecordHTTPRequest(endpoint, c.Request.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, c.Request.Method, status, time.Since(start).Seconds())
	}
}
