package web

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/telemetry"
)

// requestLogger logs every request with method, path, status, and duration,
// and records its latency histogram.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()

		telemetry.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, strconv.Itoa(status)).
			Observe(elapsed.Seconds())

		logger.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Int64("duration_ms", elapsed.Milliseconds()),
			slog.String("remote_addr", c.ClientIP()),
		)
	}
}
