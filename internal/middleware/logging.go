package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/todolist/internal/api/response"
)

// RequestLogger logs every request once it has been handled.
// 5xx responses log at Error, 4xx at Warn, everything else at Info.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"user_id", GetUserID(c),
			"remote_addr", c.ClientIP(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("Request failed", attrs...)
		case status >= http.StatusBadRequest:
			logger.Warn("Request rejected", attrs...)
		default:
			logger.Info("Request completed", attrs...)
		}
	}
}

// Recovery turns a panic in a handler into a 500 envelope.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Handler panicked",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)
				response.Internal(c)
			}
		}()
		c.Next()
	}
}
