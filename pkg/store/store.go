// Package store defines the preference store client and its backends.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/pluqqy/pluqqy-account/pkg/models"
)

// Profiles reads and partially updates user profiles.
type Profiles interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	// UpdateFields merges fields into the stored record; other fields are untouched.
	UpdateFields(ctx context.Context, userID uuid.UUID, fields models.Fields) error
}

// Accounts manages sign-in credentials.
type Accounts interface {
	CreateAccount(ctx context.Context, acc *models.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
}

// Sessions persists sign-in sessions.
type Sessions interface {
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	RevokeSession(ctx context.Context, id uuid.UUID) error
}

// Store is everything a backend provides.
type Store interface {
	Profiles
	Accounts
	Sessions
	Close()
}
