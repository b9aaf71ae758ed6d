package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"course-platform/pkg/logger"
)

// Logger логирует каждый HTTP-запрос: метод, путь, статус, длительность и IP клиента.
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields["errors"] = errs
		}

		switch {
		case status >= 500:
			log.Error("http request", fields)
		case status >= 400:
			log.Warn("http request", fields)
		default:
			log.Info("http request", fields)
		}
	}
}
