package config

import (
	"fmt"
	"path/filepath"
)

// Validate fills derived defaults and checks the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return err
		}
		c.DataDir = dir
	}

	switch c.Store.Driver {
	case DriverFile:
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
		if c.Store.MaxConns < 1 {
			return fmt.Errorf("store.max_conns must be >= 1 (got %d)", c.Store.MaxConns)
		}
	default:
		return fmt.Errorf("store.driver must be %q or %q (got %q)", DriverFile, DriverPostgres, c.Store.Driver)
	}

	if c.Auth.TokenSecret != "" && len(c.Auth.TokenSecret) < 32 {
		return fmt.Errorf("auth.token_secret must be at least 32 characters (got %d)", len(c.Auth.TokenSecret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive (got %s)", c.Auth.TokenTTL)
	}

	switch c.Photo.Backend {
	case PhotoBackendDir:
		if c.Photo.Dir == "" {
			c.Photo.Dir = filepath.Join(c.DataDir, "photos")
		}
	case PhotoBackendS3:
		if c.Photo.Bucket == "" {
			return fmt.Errorf("photo.bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("photo.backend must be %q or %q (got %q)", PhotoBackendDir, PhotoBackendS3, c.Photo.Backend)
	}
	if c.Photo.MaxBytes <= 0 {
		return fmt.Errorf("photo.max_bytes must be positive (got %d)", c.Photo.MaxBytes)
	}

	if c.Log.File != "" && !filepath.IsAbs(c.Log.File) {
		c.Log.File = filepath.Join(c.DataDir, c.Log.File)
	}

	return nil
}
