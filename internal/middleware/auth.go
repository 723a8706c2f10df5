package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/utang/internal/models"
	"github.com/mmynk/utang/internal/service"
)

// sessionKey is the gin context key for the authenticated session.
const sessionKey = "utang.session"

// SessionResolver turns a cookie token into a live session.
type SessionResolver interface {
	Session(ctx context.Context, token string) (*models.Session, error)
}

// GetSession returns the session attached by LoadSession or RequireSession.
// Returns nil if the request is not authenticated.
func GetSession(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*models.Session)
	return session
}

// LoadSession attaches the session named by the cookie if it is valid, but
// lets every request through. The action endpoint uses it because login is
// public while the other actions are not.
func LoadSession(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			// The dispatcher decides what needs a session
			session, err := resolver.Session(c.Request.Context(), token)
			switch {
			case err == nil:
				c.Set(sessionKey, session)
			case !errors.Is(err, service.ErrUnauthenticated):
				slog.Error("Failed to resolve session", "error", err)
			}
		}
		c.Next()
	}
}

// RequireSession rejects requests without a valid session cookie with 401.
func RequireSession(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c) == nil {
			token, _ := c.Cookie(cookieName)
			session, err := resolver.Session(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"message": "Not authenticated.",
				})
				return
			}
			c.Set(sessionKey, session)
		}
		c.Next()
	}
}
