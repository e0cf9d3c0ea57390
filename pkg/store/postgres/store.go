// Package postgres implements the preference store on PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pluqqy/pluqqy-account/pkg/models"
)

// DB is the subset of *pgxpool.Pool the store uses. pgxmock pools satisfy it too.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

const (
	usersTable    = "users"
	sessionsTable = "sessions"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// columnByField maps partial-update field keys to user columns.
var columnByField = map[string]string{
	models.FieldDisplayName: "display_name",
	models.FieldDarkMode:    "dark_mode",
	models.FieldPhotoURL:    "photo_url",
}

var (
	profileColumns = []string{"id", "email", "display_name", "photo_url", "dark_mode"}
	accountColumns = []string{"id", "email", "display_name", "photo_url", "dark_mode", "password_hash", "created_at", "updated_at"}
)

// Store provides account, profile and session persistence backed by PostgreSQL.
type Store struct {
	db  DB
	now func() time.Time
}

// New creates a Store over db.
func New(db DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.db.Close()
}

// ---------------------------------------------------------------------------
// Profiles
// ---------------------------------------------------------------------------

// GetProfile returns the profile columns of a user.
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	query, args, err := psql.Select(profileColumns...).
		From(usersTable).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p models.UserProfile
	err = s.db.QueryRow(ctx, query, args...).Scan(&p.ID, &p.Email, &p.DisplayName, &p.PhotoURL, &p.DarkMode)
	if err != nil {
		return nil, mapError(err, "user", userID)
	}
	return &p, nil
}

// UpdateFields sets only the named columns plus updated_at.
func (s *Store) UpdateFields(ctx context.Context, userID uuid.UUID, fields models.Fields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	clauses := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		clauses[columnByField[key]] = value
	}
	clauses["updated_at"] = s.now().UTC()

	query, args, err := psql.Update(usersTable).
		SetMap(clauses).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "user", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

// CreateAccount inserts a new user row.
func (s *Store) CreateAccount(ctx context.Context, acc *models.Account) error {
	now := s.now().UTC()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = now
	}
	acc.UpdatedAt = now

	query, args, err := psql.Insert(usersTable).
		Columns("id", "email", "password_hash", "display_name", "photo_url", "dark_mode", "created_at", "updated_at").
		Values(acc.ID, strings.TrimSpace(acc.Email), acc.PasswordHash, acc.DisplayName, acc.PhotoURL, acc.DarkMode, acc.CreatedAt, acc.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return mapError(err, "user", acc.Email)
	}
	return nil
}

// GetAccountByEmail looks a user up by email, case-insensitively.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	query, args, err := psql.Select(accountColumns...).
		From(usersTable).
		Where("lower(email) = lower(?)", strings.TrimSpace(email)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var acc models.Account
	err = s.db.QueryRow(ctx, query, args...).Scan(
		&acc.ID, &acc.Email, &acc.DisplayName, &acc.PhotoURL, &acc.DarkMode,
		&acc.PasswordHash, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "user", email)
	}
	return &acc, nil
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

// CreateSession inserts a session row.
func (s *Store) CreateSession(ctx context.Context, sess *models.Session) error {
	query, args, err := psql.Insert(sessionsTable).
		Columns("id", "user_id", "created_at", "expires_at").
		Values(sess.ID, sess.UserID, sess.CreatedAt, sess.ExpiresAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return mapError(err, "session", sess.ID)
	}
	return nil
}

// GetSession loads a session row.
func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	query, args, err := psql.Select("id", "user_id", "created_at", "expires_at", "revoked_at").
		From(sessionsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sess models.Session
	err = s.db.QueryRow(ctx, query, args...).Scan(&sess.ID, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt, &sess.RevokedAt)
	if err != nil {
		return nil, mapError(err, "session", id)
	}
	return &sess, nil
}

// RevokeSession stamps revoked_at once. Revoking an already revoked session
// succeeds; a missing session is ErrNotFound.
func (s *Store) RevokeSession(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Update(sessionsTable).
		Set("revoked_at", s.now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Where("revoked_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "session", id)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	_, err = s.GetSession(ctx, id)
	return err
}
