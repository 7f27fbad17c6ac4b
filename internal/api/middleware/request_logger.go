package middleware

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	HeaderRequestID = "X-Request-Id"

	ctxRequestID = "request_id"
	ctxSubject   = "user_id"
)

// Client supplied ids are echoed into logs, so only short plain tokens are kept.
var requestIDRe = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// quietRoutes are polled by health checks and scrapers; successful hits log at debug.
var quietRoutes = map[string]bool{
	"/":            true,
	"/health/ping": true,
	"/metrics":     true,
}

// RequestID returns the id RequestLogger assigned to the request.
func RequestID(c *gin.Context) string { return c.GetString(ctxRequestID) }

func RequestLogger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(HeaderRequestID)
		if !requestIDRe.MatchString(id) {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Set(ctxRequestID, id)

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		entry := l.WithFields(logrus.Fields{
			"request_id":     id,
			"method":         c.Request.Method,
			"route":          route,
			"status":         status,
			"latency_ms":     time.Since(start).Milliseconds(),
			"request_bytes":  c.Request.ContentLength,
			"response_bytes": c.Writer.Size(),
			"ip":             c.ClientIP(),
		})
		if sub := c.GetString(ctxSubject); sub != "" {
			entry = entry.WithField("subject", sub)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		case quietRoutes[route]:
			entry.Debug("request")
		default:
			entry.Info("request")
		}
	}
}
