package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osvaldoandrade/sparkgw/internal/metrics"
)

// MetricsMiddleware records per-route request latency. Unmatched routes are
// bucketed under their raw path to keep label cardinality bounded by the
// route table.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDurationSeconds.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
