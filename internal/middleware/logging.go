package middleware

import (
	"log/slog"
	"time"

	"logichain-web/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request and feeds the request metrics.
func Logger(log *slog.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		elapsed := time.Since(started)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		if m != nil {
			m.ObserveRequest(c.Request.Method, route, status, elapsed)
		}

		attrs := []any{
			"request_id", RequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", route,
			"status", status,
			"latency_ms", elapsed.Milliseconds(),
		}
		if s := CurrentSession(c); s.Authenticated() {
			attrs = append(attrs, "user_id", s.Principal.ID, "role", string(s.Principal.Role))
		}
		if d, ok := DecisionOf(c); ok {
			attrs = append(attrs, "decision", d.String())
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("request", attrs...)
		case status >= 400:
			log.Warn("request", attrs...)
		default:
			log.Info("request", attrs...)
		}
	}
}
