package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the read-only projection of a user's stored record.
type UserProfile struct {
	ID          uuid.UUID `yaml:"id"`
	Email       string    `yaml:"email"`
	DisplayName string    `yaml:"display_name"`
	PhotoURL    string    `yaml:"photo_url,omitempty"`
	DarkMode    bool      `yaml:"dark_mode"`
}

// SignedIn reports whether the profile carries a usable user id.
func (p *UserProfile) SignedIn() bool {
	return p != nil && p.ID != uuid.Nil
}

// Account is a profile plus the credentials needed to sign in.
type Account struct {
	UserProfile  `yaml:",inline"`
	PasswordHash string    `yaml:"password_hash"`
	CreatedAt    time.Time `yaml:"created_at"`
	UpdatedAt    time.Time `yaml:"updated_at"`
}

// Session is a server-side record of one sign-in.
type Session struct {
	ID        uuid.UUID  `yaml:"id"`
	UserID    uuid.UUID  `yaml:"user_id"`
	CreatedAt time.Time  `yaml:"created_at"`
	ExpiresAt time.Time  `yaml:"expires_at"`
	RevokedAt *time.Time `yaml:"revoked_at,omitempty"`
}

// Active reports whether the session can still authenticate at now.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
