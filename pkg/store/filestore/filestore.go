// Package filestore keeps accounts, profiles and sessions as YAML documents
// on the local filesystem. It is the default backend for single-user setups.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/pluqqy-account/pkg/models"
)

const (
	UsersDir    = "users"
	SessionsDir = "sessions"
)

// Store is a YAML-file backed store rooted at a directory.
type Store struct {
	mu   sync.Mutex
	root string
	now  func() time.Time
}

// New creates the directory layout under root and returns a Store.
func New(root string) (*Store, error) {
	dirs := []string{
		root,
		filepath.Join(root, UsersDir),
		filepath.Join(root, SessionsDir),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return &Store{root: root, now: time.Now}, nil
}

// Close is a no-op; files are written synchronously.
func (s *Store) Close() {}

// GetProfile returns the profile projection of a stored account.
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.readAccount(userID)
	if err != nil {
		return nil, err
	}
	p := acc.UserProfile
	return &p, nil
}

// UpdateFields merges fields into the stored account document.
func (s *Store) UpdateFields(ctx context.Context, userID uuid.UUID, fields models.Fields) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.readAccount(userID)
	if err != nil {
		return err
	}

	fields.Apply(&acc.UserProfile)
	acc.UpdatedAt = s.now().UTC()

	return s.writeYAML(s.accountPath(userID), acc)
}

// CreateAccount stores a new account. Emails are unique, case-insensitively.
func (s *Store) CreateAccount(ctx context.Context, acc *models.Account) error {
	if acc.ID == uuid.Nil {
		return models.NewValidationError("id", "required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.findByEmail(acc.Email); err == nil {
		return fmt.Errorf("account %s: %w", acc.Email, models.ErrAlreadyExists)
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	now := s.now().UTC()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = now
	}
	acc.UpdatedAt = now

	return s.writeYAML(s.accountPath(acc.ID), acc)
}

// GetAccountByEmail scans the user documents for a matching email.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findByEmail(email)
}

// CreateSession stores a new session document.
func (s *Store) CreateSession(ctx context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeYAML(s.sessionPath(sess.ID), sess)
}

// GetSession loads a session by id.
func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readSession(id)
}

// RevokeSession marks a session revoked. Revoking twice keeps the first timestamp.
func (s *Store) RevokeSession(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.readSession(id)
	if err != nil {
		return err
	}
	if sess.RevokedAt != nil {
		return nil
	}
	now := s.now().UTC()
	sess.RevokedAt = &now

	return s.writeYAML(s.sessionPath(id), sess)
}

func (s *Store) accountPath(id uuid.UUID) string {
	return filepath.Join(s.root, UsersDir, id.String()+".yaml")
}

func (s *Store) sessionPath(id uuid.UUID) string {
	return filepath.Join(s.root, SessionsDir, id.String()+".yaml")
}

func (s *Store) readAccount(id uuid.UUID) (*models.Account, error) {
	var acc models.Account
	if err := readYAML(s.accountPath(id), &acc); err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return &acc, nil
}

func (s *Store) readSession(id uuid.UUID) (*models.Session, error) {
	var sess models.Session
	if err := readYAML(s.sessionPath(id), &sess); err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return &sess, nil
}

func (s *Store) findByEmail(email string) (*models.Account, error) {
	dir := filepath.Join(s.root, UsersDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read users directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		var acc models.Account
		if err := readYAML(filepath.Join(dir, entry.Name()), &acc); err != nil {
			return nil, err
		}
		if strings.EqualFold(acc.Email, email) {
			return &acc, nil
		}
	}
	return nil, fmt.Errorf("account %s: %w", email, models.ErrNotFound)
}

func readYAML(path string, out any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, out); err != nil {
		return fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}
	return nil
}

// writeYAML replaces path atomically so a crash never leaves half a document.
func (s *Store) writeYAML(path string, v any) error {
	content, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
