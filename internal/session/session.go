// Package session keeps the signed-in user and API token of each browser,
// addressed by an opaque cookie.
package session

import (
	"errors"
	"time"

	"careconnect_web/internal/models"
)

// ErrNotFound is returned by a Store for a missing or expired session.
var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string      `json:"id"`
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	CreatedAt time.Time   `json:"createdAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// IsAuthenticated is false for a nil session.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// Role returns "" when not authenticated.
func (s *Session) Role() models.UserRole {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.User.Role
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
