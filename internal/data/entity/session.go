package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the read side of a login issued by the auth service. Its token is
// also the bearer credential forwarded to the booking backend.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

// Usable reports whether the session may still authorize a request at now.
func (s *Session) Usable(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
