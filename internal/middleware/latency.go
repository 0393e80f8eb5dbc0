package middleware

import (
	"time"

	"tienda/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Latency feeds the injected metrics collector with one sample per request,
// keyed by route pattern (so /productos/1 and /productos/2 share a bucket).
func Latency(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.Record(c.Request.Method+" "+route, time.Since(start))
	}
}
