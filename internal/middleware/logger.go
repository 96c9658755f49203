package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// LoggerMiddleware attaches a request-scoped logger to the gin context,
// tagged with the request id when one is present. Run after
// RequestIDMiddleware.
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := logger
		if reqID := c.GetString("request_id"); reqID != "" {
			l = logger.With("request_id", reqID)
		}
		c.Set("logger", l)
		c.Next()
	}
}
