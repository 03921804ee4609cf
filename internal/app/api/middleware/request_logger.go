package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware attaches a request-scoped logger enriched with the
// trace ID to gin.Context and the request context, and mirrors the trace ID
// back on the response so clients can quote it in reports.
func RequestLoggerMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetString("traceID")
		if traceID != "" {
			c.Writer.Header().Set("X-Request-ID", traceID)
		}

		reqLogger := base.With("trace_id", traceID)
		c.Set("logger", reqLogger)

		ctx := context.WithValue(c.Request.Context(), "logger", reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
