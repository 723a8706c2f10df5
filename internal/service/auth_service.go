package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/utang/internal/auth"
	"github.com/mmynk/utang/internal/models"
)

// AuthService handles login and logout.
type AuthService struct {
	authenticator auth.Authenticator
	sessions      *auth.SessionManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, sessions *auth.SessionManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		sessions:      sessions,
		logger:        logger,
	}
}

// Login checks the password and opens a session, returning its cookie token.
// Every mismatch is reported the same way.
func (s *AuthService) Login(ctx context.Context, password string) (string, *models.Session, error) {
	if err := s.authenticator.Authenticate(ctx, password); err != nil {
		s.logger.Warn("Login failed", "error", err)
		return "", nil, &Error{kind: ErrBadCredentials, msg: "Incorrect password."}
	}

	token, session, err := s.sessions.Start(ctx)
	if err != nil {
		s.logger.Error("Failed to start session", "error", err)
		return "", nil, err
	}

	s.logger.Info("Logged in", "session_id", session.ID)
	return token, session, nil
}

// Logout destroys the session. It never fails from the caller's point of
// view; storage errors are only logged.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	if err := s.sessions.End(ctx, sessionID); err != nil {
		s.logger.Error("Failed to end session", "session_id", sessionID, "error", err)
		return
	}
	s.logger.Info("Logged out", "session_id", sessionID)
}

// Session resolves a cookie token to a live session.
// Any token problem is reported as ErrUnauthenticated.
func (s *AuthService) Session(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.sessions.Resolve(ctx, token)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, auth.ErrMissingToken) || errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrSessionExpired) {
		return nil, &Error{kind: ErrUnauthenticated, msg: "Not authenticated."}
	}
	return nil, err
}

// SessionTTL returns the lifetime of new sessions.
func (s *AuthService) SessionTTL() int {
	return int(s.sessions.TTL().Seconds())
}
