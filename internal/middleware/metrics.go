package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"social-service/internal/observability"
)

// Metrics records every request against its route template. Unmatched paths
// share one label so scanners cannot blow up the series count.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observability.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
