package panel

import (
	"context"

	"github.com/google/uuid"

	"github.com/pluqqy/pluqqy-account/pkg/models"
)

// Identity answers who is signed in and ends their session.
type Identity interface {
	// CurrentUser returns nil when nobody is signed in.
	CurrentUser(ctx context.Context) (*models.UserProfile, error)
	EndSession(ctx context.Context) error
}

// Store persists partial profile updates. Only the named fields change.
type Store interface {
	UpdateFields(ctx context.Context, userID uuid.UUID, fields models.Fields) error
}

// Cache is the durable local key/value cache. Writes are best effort.
type Cache interface {
	Set(key, value string) error
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator switches the active route.
type Navigator interface {
	GoTo(path string)
}

// Appearance is the process-wide dark/light marker.
type Appearance interface {
	IsDark() bool
	Apply(dark bool)
}
