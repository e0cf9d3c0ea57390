package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsValidate(t *testing.T) {
	tests := []struct {
		name    string
		fields  Fields
		wantErr bool
		field   string
	}{
		{name: "display name", fields: Fields{FieldDisplayName: "Ada"}},
		{name: "ten code units", fields: Fields{FieldDisplayName: "Alexandrin"}},
		{name: "dark mode", fields: Fields{FieldDarkMode: false}},
		{name: "photo url", fields: Fields{FieldPhotoURL: "file:///tmp/a.png"}},
		{name: "empty", fields: Fields{}, wantErr: true, field: "fields"},
		{name: "name too long", fields: Fields{FieldDisplayName: "Alexandrine"}, wantErr: true, field: FieldDisplayName},
		{name: "emoji counts twice", fields: Fields{FieldDisplayName: "Alexandri😀"}, wantErr: true, field: FieldDisplayName},
		{name: "name wrong type", fields: Fields{FieldDisplayName: 42}, wantErr: true, field: FieldDisplayName},
		{name: "dark mode wrong type", fields: Fields{FieldDarkMode: "true"}, wantErr: true, field: FieldDarkMode},
		{name: "unknown key", fields: Fields{"email": "x@example.com"}, wantErr: true, field: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Errors[0].Field)
		})
	}
}

func TestFieldsApply(t *testing.T) {
	p := &UserProfile{DisplayName: "Ada", DarkMode: true}

	Fields{FieldDarkMode: false}.Apply(p)
	assert.Equal(t, "Ada", p.DisplayName)
	assert.False(t, p.DarkMode)

	Fields{FieldDisplayName: "Lovelace", FieldPhotoURL: "file:///a.png"}.Apply(p)
	assert.Equal(t, "Lovelace", p.DisplayName)
	assert.Equal(t, "file:///a.png", p.PhotoURL)
	assert.False(t, p.DarkMode)
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "validation: email: required", NewValidationError("email", "required").Error())

	err := &ValidationError{Errors: []FieldError{{Field: "a"}, {Field: "b"}}}
	assert.Equal(t, "validation: 2 errors", err.Error())
}

func TestSignedIn(t *testing.T) {
	var nilProfile *UserProfile
	assert.False(t, nilProfile.SignedIn())
	assert.False(t, (&UserProfile{}).SignedIn())
	assert.True(t, (&UserProfile{ID: uuid.New()}).SignedIn())
}

func TestSessionActive(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, s.Active(now))
	assert.False(t, s.Active(now.Add(2*time.Hour)))

	revoked := now
	s.RevokedAt = &revoked
	assert.False(t, s.Active(now))
}
