package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/utang/internal/models"
	"github.com/mmynk/utang/internal/storage"
)

// ErrSessionExpired is returned for a well-formed token whose session is gone.
var ErrSessionExpired = errors.New("session expired")

// SessionStorage defines the session persistence the manager needs.
type SessionStorage interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// SessionManager ties server-side sessions to signed cookie tokens.
// The session row is the source of truth; the token only carries its ID.
type SessionManager struct {
	storage SessionStorage
	tokens  *JWTManager
	ttl     time.Duration
	now     func() time.Time
}

// NewSessionManager creates a session manager issuing sessions valid for ttl.
func NewSessionManager(storage SessionStorage, tokens *JWTManager, ttl time.Duration) *SessionManager {
	return &SessionManager{
		storage: storage,
		tokens:  tokens,
		ttl:     ttl,
		now:     time.Now,
	}
}

// TTL returns how long new sessions stay valid.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Start creates a session and returns the token to hand to the client.
func (m *SessionManager) Start(ctx context.Context) (string, *models.Session, error) {
	now := m.now().Truncate(time.Second)
	session := &models.Session{
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.storage.CreateSession(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := m.tokens.Generate(session)
	if err != nil {
		return "", nil, err
	}

	return token, session, nil
}

// Resolve returns the live session referenced by token.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims, err := m.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	session, err := m.storage.GetSession(ctx, claims.SessionID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Expired(m.now()) {
		return nil, ErrSessionExpired
	}

	return session, nil
}

// End destroys a session. Ending an unknown session succeeds.
func (m *SessionManager) End(ctx context.Context, sessionID string) error {
	if err := m.storage.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// PurgeExpired removes expired sessions from storage.
func (m *SessionManager) PurgeExpired(ctx context.Context) (int64, error) {
	return m.storage.DeleteExpiredSessions(ctx, m.now())
}

// RunJanitor purges expired sessions every interval until ctx is done.
func (m *SessionManager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.PurgeExpired(ctx)
			if err != nil {
				slog.Error("Session cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("Expired sessions removed", "count", n)
			}
		}
	}
}
