package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoToken is returned by TokenFile.Load when nobody is signed in.
var ErrNoToken = errors.New("no session token")

// Token is the on-disk record of the signed-in session.
type Token struct {
	Token string `yaml:"token"`
	Email string `yaml:"email"`
}

// TokenFile stores the session token with owner-only permissions.
type TokenFile struct {
	path string
}

// NewTokenFile returns a TokenFile at path.
func NewTokenFile(path string) *TokenFile {
	return &TokenFile{path: path}
}

// Load reads the stored token.
func (f *TokenFile) Load() (*Token, error) {
	content, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to read session token: %w", err)
	}

	var t Token
	if err := yaml.Unmarshal(content, &t); err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if t.Token == "" {
		return nil, ErrNoToken
	}
	return &t, nil
}

// Save writes t, replacing any previous token.
func (f *TokenFile) Save(t *Token) error {
	content, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal session token: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	// CreateTemp opens the file 0600, so the token is never readable by others.
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create session token: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session token: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session token: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace session token: %w", err)
	}
	return nil
}

// Remove deletes the token. A missing token is not an error.
func (f *TokenFile) Remove() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session token: %w", err)
	}
	return nil
}

// LoadOrCreateSecret returns the signing secret stored at path, generating
// a random one on first use.
func LoadOrCreateSecret(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err == nil {
		secret := strings.TrimSpace(string(content))
		if secret != "" {
			return []byte(secret), nil
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read token secret: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate token secret: %w", err)
	}
	secret := hex.EncodeToString(buf)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create secret directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(secret+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write token secret: %w", err)
	}
	return []byte(secret), nil
}
