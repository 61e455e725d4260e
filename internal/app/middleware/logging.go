package middleware

import (
	"time"

	"github.com/stringfold/ally/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware logs one line per request. The query string is left out
// since callbacks carry authorization codes.
func LoggingMiddleware(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		l.Info(c.Request.Context(), "request completed",
			logger.Field{Key: "request_id", Value: c.GetString(RequestIDKey)},
			logger.Field{Key: "path", Value: path},
			logger.Field{Key: "method", Value: c.Request.Method},
			logger.Field{Key: "status", Value: status},
			logger.Field{Key: "latency", Value: latency},
		)
	}
}
