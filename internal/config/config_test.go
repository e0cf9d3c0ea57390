package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("PLUQQY_ACCOUNT_DATA_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, DriverFile, cfg.Store.Driver)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, PhotoBackendDir, cfg.Photo.Backend)
	assert.Equal(t, filepath.Join(dir, "photos"), cfg.Photo.Dir)
	assert.Equal(t, filepath.Join(dir, "pluqqy-account.log"), cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EmptySelectorsUseDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("PLUQQY_ACCOUNT_DATA_DIR", dir)
	t.Setenv("PLUQQY_ACCOUNT_STORE_DRIVER", "")
	t.Setenv("PLUQQY_ACCOUNT_PHOTO_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverFile, cfg.Store.Driver)
	assert.Equal(t, PhotoBackendDir, cfg.Photo.Backend)
	assert.Equal(t, filepath.Join(dir, "photos"), cfg.Photo.Dir)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
data_dir: ` + dir + `
store:
  driver: postgres
  dsn: postgres://localhost:5432/accounts
auth:
  token_secret: ` + strings.Repeat("s", 32) + `
  token_ttl: 1h
log:
  level: debug
  file: /tmp/account.log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv(ConfigPathEnv, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost:5432/accounts", cfg.Store.DSN)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/account.log", cfg.Log.File)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Setenv(ConfigPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			DataDir: "/data",
			Store:   StoreConfig{Driver: DriverFile},
			Auth:    AuthConfig{TokenTTL: time.Hour},
			Photo:   PhotoConfig{Backend: PhotoBackendDir, MaxBytes: 1024},
			Log:     LogConfig{Level: "info", File: "app.log"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Store.Driver = "mongo" },
			wantErr: "store.driver",
		},
		{
			name:    "postgres without dsn",
			mutate:  func(c *Config) { c.Store.Driver = DriverPostgres; c.Store.MaxConns = 4 },
			wantErr: "store.dsn",
		},
		{
			name:    "short token secret",
			mutate:  func(c *Config) { c.Auth.TokenSecret = "short" },
			wantErr: "auth.token_secret",
		},
		{
			name:    "non-positive ttl",
			mutate:  func(c *Config) { c.Auth.TokenTTL = 0 },
			wantErr: "auth.token_ttl",
		},
		{
			name:    "s3 without bucket",
			mutate:  func(c *Config) { c.Photo.Backend = PhotoBackendS3 },
			wantErr: "photo.bucket",
		},
		{
			name:    "unknown photo backend",
			mutate:  func(c *Config) { c.Photo.Backend = "ftp" },
			wantErr: "photo.backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, filepath.Join("/data", "photos"), cfg.Photo.Dir)
				assert.Equal(t, filepath.Join("/data", "app.log"), cfg.Log.File)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
