package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// ActionKey is the gin context key the dispatcher stores the action name under.
const ActionKey = "utang.action"

// RequestLogger returns a gin middleware that logs every request.
// It logs the path, action, status and duration; client errors are logged
// at warn level and server errors at error level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"remote_addr", c.ClientIP(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if action := c.GetString(ActionKey); action != "" {
			attrs = append(attrs, "action", action)
		}
		if session := GetSession(c); session != nil {
			attrs = append(attrs, "session_id", session.ID)
		}

		switch {
		case status >= 500:
			slog.Error("Request failed", append(attrs, "errors", c.Errors.String())...)
		case status >= 400:
			slog.Warn("Request rejected", attrs...)
		default:
			slog.Info("Request completed", attrs...)
		}
	}
}
