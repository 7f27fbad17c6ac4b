package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/telepatia/internal/metrics"
)

// Metrics labels requests by route template, never by raw path.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.RecordRequest(c.FullPath(), c.Request.Method, c.Writer.Status(), time.Since(start).Seconds())
	}
}
