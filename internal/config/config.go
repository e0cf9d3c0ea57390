package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	DataDir string      `yaml:"data_dir" env:"PLUQQY_ACCOUNT_DATA_DIR"`
	Store   StoreConfig `yaml:"store"`
	Auth    AuthConfig  `yaml:"auth"`
	Photo   PhotoConfig `yaml:"photo"`
	Log     LogConfig   `yaml:"log"`
}

// StoreConfig selects and configures the preference store backend.
type StoreConfig struct {
	Driver          string        `yaml:"driver"             env:"PLUQQY_ACCOUNT_STORE_DRIVER"             env-default:"file"`
	DSN             string        `yaml:"dsn"                env:"PLUQQY_ACCOUNT_DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"PLUQQY_ACCOUNT_DATABASE_MAX_CONNS"       env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"PLUQQY_ACCOUNT_DATABASE_MIN_CONNS"       env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"PLUQQY_ACCOUNT_DATABASE_MAX_CONN_LIFETIME" env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"PLUQQY_ACCOUNT_DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	TokenSecret string        `yaml:"token_secret" env:"PLUQQY_ACCOUNT_TOKEN_SECRET"`
	TokenTTL    time.Duration `yaml:"token_ttl"    env:"PLUQQY_ACCOUNT_TOKEN_TTL"    env-default:"720h"`
}

// PhotoConfig selects where uploaded profile photos are stored.
type PhotoConfig struct {
	Backend       string `yaml:"backend"         env:"PLUQQY_ACCOUNT_PHOTO_BACKEND"         env-default:"dir"`
	Dir           string `yaml:"dir"             env:"PLUQQY_ACCOUNT_PHOTO_DIR"`
	Bucket        string `yaml:"bucket"          env:"PLUQQY_ACCOUNT_S3_BUCKET"`
	Region        string `yaml:"region"          env:"PLUQQY_ACCOUNT_S3_REGION"          env-default:"us-east-1"`
	Endpoint      string `yaml:"endpoint"        env:"PLUQQY_ACCOUNT_S3_ENDPOINT"`
	AccessKey     string `yaml:"access_key"      env:"PLUQQY_ACCOUNT_S3_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key"      env:"PLUQQY_ACCOUNT_S3_SECRET_KEY"`
	PublicBaseURL string `yaml:"public_base_url" env:"PLUQQY_ACCOUNT_S3_PUBLIC_BASE_URL"`
	MaxBytes      int64  `yaml:"max_bytes"       env:"PLUQQY_ACCOUNT_PHOTO_MAX_BYTES"     env-default:"5242880"`
}

// LogConfig holds logging settings. File is relative to DataDir unless absolute.
type LogConfig struct {
	Level string `yaml:"level" env:"PLUQQY_ACCOUNT_LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file"  env:"PLUQQY_ACCOUNT_LOG_FILE"  env-default:"pluqqy-account.log"`
}

// Store drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Photo backends.
const (
	PhotoBackendDir = "dir"
	PhotoBackendS3  = "s3"
)
