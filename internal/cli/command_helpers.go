package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-account/internal/config"
	"github.com/pluqqy/pluqqy-account/internal/logging"
	"github.com/pluqqy/pluqqy-account/pkg/cache"
	"github.com/pluqqy/pluqqy-account/pkg/models"
	"github.com/pluqqy/pluqqy-account/pkg/photo"
	"github.com/pluqqy/pluqqy-account/pkg/session"
	"github.com/pluqqy/pluqqy-account/pkg/store"
)

const (
	tokenFileName  = "session.yaml"
	secretFileName = "token.secret"
)

// CommandContext holds the dependencies shared by commands.
type CommandContext struct {
	Config   *config.Config
	Logger   *zap.Logger
	Store    store.Store
	Cache    *cache.File
	Sessions *session.Manager
}

// NewCommandContext loads configuration and opens every dependency.
func NewCommandContext(ctx context.Context) (*CommandContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewCommandContextFromConfig(ctx, cfg)
}

// NewCommandContextFromConfig opens dependencies for an already loaded config.
func NewCommandContextFromConfig(ctx context.Context, cfg *config.Config) (*CommandContext, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.Store, cfg.DataDir)
	if err != nil {
		return nil, err
	}

	secret := []byte(cfg.Auth.TokenSecret)
	if len(secret) == 0 {
		secret, err = session.LoadOrCreateSecret(filepath.Join(cfg.DataDir, secretFileName))
		if err != nil {
			st.Close()
			return nil, err
		}
	}

	tokens := session.NewTokenFile(filepath.Join(cfg.DataDir, tokenFileName))

	return &CommandContext{
		Config:   cfg,
		Logger:   logger,
		Store:    st,
		Cache:    cache.Open(filepath.Join(cfg.DataDir, cache.FileName)),
		Sessions: session.NewManager(st, tokens, secret, cfg.Auth.TokenTTL, logger),
	}, nil
}

// Photos builds the photo service for the configured backend.
func (c *CommandContext) Photos(ctx context.Context) (*photo.Service, error) {
	objects, err := photo.NewObjectStore(ctx, c.Config.Photo)
	if err != nil {
		return nil, err
	}
	return photo.NewService(objects, c.Store, c.Config.Photo.MaxBytes, c.Logger), nil
}

// RequireUser returns the signed-in user or an error telling them to log in.
func (c *CommandContext) RequireUser(ctx context.Context) (*models.UserProfile, error) {
	p, err := c.Sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("not signed in. Run 'pluqqy-account login' first")
	}
	return p, nil
}

// Close releases the store and flushes the logger.
func (c *CommandContext) Close() {
	c.Store.Close()
	_ = c.Logger.Sync()
}
