package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/limaJavier/classgrid/internal/service"
)

// unmatchedPath labels requests no route answered
const unmatchedPath = "unmatched"

// Metrics observes every request under its route template (":id" rather than the timetable id). Routes listed in skip,
// such as the Prometheus scrape endpoint itself, are not observed.
func Metrics(metricsSvc *service.MetricsService, skip ...string) gin.HandlerFunc {
	skipped := lo.SliceToMap(skip, func(path string) (string, struct{}) { return path, struct{}{} })

	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		if _, ok := skipped[c.FullPath()]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
