package models

import "time"

// Session is a server-side login session. The session ID travels to the
// browser inside a signed cookie.
type Session struct {
	// ID is the unique session identifier (UUID format).
	ID string

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
