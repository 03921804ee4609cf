package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLogMiddleware logs one line per request using the request-scoped
// logger attached by RequestLoggerMiddleware.
func AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		path := c.FullPath()
		if path == "" {
			// unmatched route, keep the raw path
			path = c.Request.URL.Path
		}

		if l, ok := c.Get("logger"); ok {
			if log, ok := l.(*zap.SugaredLogger); ok && log != nil {
				log.Infow("http_access",
					"method", c.Request.Method,
					"path", path,
					"status", c.Writer.Status(),
					"latency_ms", latency.Milliseconds(),
					"size", c.Writer.Size(),
					"client_ip", c.ClientIP(),
				)
			}
		}
	}
}
