package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/growthlab/boostup/pkg/tool"
)

// TraceMiddleware assigns each request a trace ID, honoring a client-supplied
// X-Request-ID. The ID is stored in both gin.Context (key "traceID") and the
// request's context.Context.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Request-ID")
		if traceID == "" {
			traceID = tool.GenerateUUIDV7()
		}

		c.Set("traceID", traceID)
		ctx := context.WithValue(c.Request.Context(), "traceID", traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
