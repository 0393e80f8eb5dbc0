package handler

import (
	"net/http"

	"tienda/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Stats exposes uptime and per-route latency percentiles from the injected
// collector. Best-effort numbers: process-local, reset on restart.
func Stats(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, collector.Snapshot())
	}
}
