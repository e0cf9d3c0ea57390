package models

import (
	"fmt"
	"sort"

	"github.com/pluqqy/pluqqy-account/pkg/utils"
)

// Field keys accepted by a partial profile update.
const (
	FieldDisplayName = "displayName"
	FieldDarkMode    = "darkMode"
	FieldPhotoURL    = "photoURL"
)

// MaxDisplayNameLength is measured in UTF-16 code units.
const MaxDisplayNameLength = 10

// Fields is a partial update: only the named fields change.
type Fields map[string]any

// Keys returns the field keys in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that every key is known and carries a value of the right type.
func (f Fields) Validate() error {
	if len(f) == 0 {
		return NewValidationError("fields", "at least one field is required")
	}

	var errs []FieldError
	for _, key := range f.Keys() {
		switch key {
		case FieldDisplayName:
			name, ok := f[key].(string)
			if !ok {
				errs = append(errs, FieldError{Field: key, Message: "must be a string"})
			} else if utils.UTF16Len(name) > MaxDisplayNameLength {
				errs = append(errs, FieldError{Field: key, Message: fmt.Sprintf("at most %d characters", MaxDisplayNameLength)})
			}
		case FieldDarkMode:
			if _, ok := f[key].(bool); !ok {
				errs = append(errs, FieldError{Field: key, Message: "must be a boolean"})
			}
		case FieldPhotoURL:
			if _, ok := f[key].(string); !ok {
				errs = append(errs, FieldError{Field: key, Message: "must be a string"})
			}
		default:
			errs = append(errs, FieldError{Field: key, Message: "unknown field"})
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// Apply merges the fields into p. Callers validate first.
func (f Fields) Apply(p *UserProfile) {
	if v, ok := f[FieldDisplayName].(string); ok {
		p.DisplayName = v
	}
	if v, ok := f[FieldDarkMode].(bool); ok {
		p.DarkMode = v
	}
	if v, ok := f[FieldPhotoURL].(string); ok {
		p.PhotoURL = v
	}
}
