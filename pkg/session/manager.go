// Package session is the identity provider: it registers accounts, signs
// users in, and answers who is signed in right now.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pluqqy/pluqqy-account/pkg/models"
	"github.com/pluqqy/pluqqy-account/pkg/store"
	"github.com/pluqqy/pluqqy-account/pkg/utils"
)

// MinPasswordLength is enforced at registration.
const MinPasswordLength = 8

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", models.ErrUnauthorized)

// Backend is the slice of the store the manager needs.
type Backend interface {
	store.Profiles
	store.Accounts
	store.Sessions
}

// Claims carried by the session token.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
}

// Manager signs users in and out against a Backend and a local TokenFile.
type Manager struct {
	backend Backend
	tokens  *TokenFile
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
	log     *zap.Logger
}

// NewManager creates a Manager. ttl bounds both the token and the session row.
func NewManager(backend Backend, tokens *TokenFile, secret []byte, ttl time.Duration, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		backend: backend,
		tokens:  tokens,
		secret:  secret,
		ttl:     ttl,
		now:     time.Now,
		log:     log,
	}
}

// Register creates an account. New accounts start in dark mode.
func (m *Manager) Register(ctx context.Context, email, password, displayName string) (*models.UserProfile, error) {
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)

	var errs []models.FieldError
	if email == "" || !strings.Contains(email, "@") {
		errs = append(errs, models.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(password) < MinPasswordLength {
		errs = append(errs, models.FieldError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength)})
	}
	if displayName == "" {
		errs = append(errs, models.FieldError{Field: "display_name", Message: "required"})
	} else if utils.UTF16Len(displayName) > models.MaxDisplayNameLength {
		errs = append(errs, models.FieldError{Field: "display_name", Message: fmt.Sprintf("at most %d characters", models.MaxDisplayNameLength)})
	}
	if len(errs) > 0 {
		return nil, &models.ValidationError{Errors: errs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("session.Register: hash password: %w", err)
	}

	acc := &models.Account{
		UserProfile: models.UserProfile{
			ID:          uuid.New(),
			Email:       email,
			DisplayName: displayName,
			DarkMode:    true,
		},
		PasswordHash: string(hash),
	}
	if err := m.backend.CreateAccount(ctx, acc); err != nil {
		return nil, fmt.Errorf("session.Register: %w", err)
	}

	m.log.Info("account registered", zap.String("user_id", acc.ID.String()))

	p := acc.UserProfile
	return &p, nil
}

// Login verifies credentials, opens a session and stores its token.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.UserProfile, error) {
	acc, err := m.backend.GetAccountByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("session.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := m.now().UTC()
	sess := &models.Session{
		ID:        uuid.New(),
		UserID:    acc.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.backend.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}

	signed, err := m.sign(sess)
	if err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}
	if err := m.tokens.Save(&Token{Token: signed, Email: acc.Email}); err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}

	m.log.Info("signed in",
		zap.String("user_id", acc.ID.String()),
		zap.String("session_id", sess.ID.String()),
	)

	p := acc.UserProfile
	return &p, nil
}

// CurrentUser returns the signed-in user's profile, or nil when nobody is
// signed in: no token, an invalid or expired token, a revoked session, or
// a deleted account.
func (m *Manager) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	claims, err := m.loadClaims()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return nil, nil
		}
		m.log.Debug("session token rejected", zap.Error(err))
		return nil, nil
	}

	sessionID, userID, err := claims.ids()
	if err != nil {
		m.log.Debug("session token rejected", zap.Error(err))
		return nil, nil
	}

	sess, err := m.backend.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("session.CurrentUser: %w", err)
	}
	if sess.UserID != userID || !sess.Active(m.now()) {
		return nil, nil
	}

	p, err := m.backend.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("session.CurrentUser: %w", err)
	}
	return p, nil
}

// EndSession revokes the current session and forgets its token. Ending when
// nobody is signed in succeeds. If the revoke fails the token is kept so the
// caller can retry.
func (m *Manager) EndSession(ctx context.Context) error {
	claims, err := m.loadClaims()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return nil
		}
		// An unusable token cannot authenticate anyway.
		m.log.Warn("discarding unusable session token", zap.Error(err))
		return m.tokens.Remove()
	}

	if sessionID, _, err := claims.ids(); err == nil {
		if err := m.backend.RevokeSession(ctx, sessionID); err != nil && !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("session.EndSession: %w", err)
		}
		m.log.Info("signed out", zap.String("session_id", sessionID.String()))
	}

	return m.tokens.Remove()
}

func (m *Manager) sign(sess *models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
		SessionID: sess.ID.String(),
		UserID:    sess.UserID.String(),
	})
	return token.SignedString(m.secret)
}

func (m *Manager) loadClaims() (*Claims, error) {
	stored, err := m.tokens.Load()
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(stored.Token, claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("parse session token: %w", models.ErrUnauthorized)
	}
	return claims, nil
}

func (c *Claims) ids() (uuid.UUID, uuid.UUID, error) {
	sessionID, err := uuid.Parse(c.SessionID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("session id: %w", err)
	}
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("user id: %w", err)
	}
	return sessionID, userID, nil
}
