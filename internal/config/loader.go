package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigPathEnv overrides the location of the YAML config file.
const ConfigPathEnv = "PLUQQY_ACCOUNT_CONFIG"

// DefaultDirName is the data directory created under the user's home.
const DefaultDirName = ".pluqqy-account"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is PLUQQY_ACCOUNT_CONFIG, falling back to
// <data dir>/config.yaml. A missing default file is not an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv(ConfigPathEnv)
	explicitPath := path != ""
	if !explicitPath {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills selectors left blank. cleanenv takes a variable that
// is exported but empty as the value and skips env-default.
func (c *Config) applyDefaults() {
	if c.Store.Driver == "" {
		c.Store.Driver = DriverFile
	}
	if c.Photo.Backend == "" {
		c.Photo.Backend = PhotoBackendDir
	}
}

func defaultDataDir() (string, error) {
	if dir := os.Getenv("PLUQQY_ACCOUNT_DATA_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}
