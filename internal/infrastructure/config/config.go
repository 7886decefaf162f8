package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage backends understood by the storage factory.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendS3       = "s3"
	BackendPostgres = "postgres"
)

// Config holds all desktop core configuration.
type Config struct {
	Storage StorageConfig
	VFS     VFSConfig
	Window  WindowConfig
	Logging LogConfig
	Metrics MetricsConfig
}

// StorageConfig selects and parameterizes the durable slot backend.
type StorageConfig struct {
	Backend  string `envconfig:"STORAGE_BACKEND" default:"memory"`
	Dir      string `envconfig:"STORAGE_DIR" default:"/tmp/limitlessos"`
	Compress bool   `envconfig:"STORAGE_COMPRESS" default:"false"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"limitlessos"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`

	PostgresURL string `envconfig:"POSTGRES_URL"`

	BreakerFailures uint32        `envconfig:"STORAGE_BREAKER_FAILURES" default:"5"`
	BreakerCooldown time.Duration `envconfig:"STORAGE_BREAKER_COOLDOWN" default:"30s"`
}

// VFSConfig holds file store configuration.
type VFSConfig struct {
	SlotKey      string `envconfig:"VFS_SLOT_KEY" default:"limitlessos_vfs"`
	SeedManifest string `envconfig:"VFS_SEED_MANIFEST"`
	SeedDir      string `envconfig:"VFS_SEED_DIR"`
	Checksum     string `envconfig:"VFS_CHECKSUM" default:"blake2b"`
}

// WindowConfig holds window session defaults.
type WindowConfig struct {
	BaseZOrder    int64 `envconfig:"WINDOW_BASE_Z" default:"1"`
	DefaultWidth  int   `envconfig:"WINDOW_DEFAULT_WIDTH" default:"800"`
	DefaultHeight int   `envconfig:"WINDOW_DEFAULT_HEIGHT" default:"600"`
	ScreenWidth   int   `envconfig:"SCREEN_WIDTH" default:"1920"`
	ScreenHeight  int   `envconfig:"SCREEN_HEIGHT" default:"1080"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// MetricsConfig toggles metric collection.
type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:  BackendMemory,
			Dir:      "/tmp/limitlessos",
			S3Bucket: "limitlessos",
			S3Region: "us-east-1",

			BreakerFailures: 5,
			BreakerCooldown: 30 * time.Second,
		},
		VFS: VFSConfig{
			SlotKey:  "limitlessos_vfs",
			Checksum: "blake2b",
		},
		Window: WindowConfig{
			BaseZOrder:    1,
			DefaultWidth:  800,
			DefaultHeight: 600,
			ScreenWidth:   1920,
			ScreenHeight:  1080,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("STORAGE_DIR required for file backend")
		}
	case BackendS3:
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET required for s3 backend")
		}
	case BackendPostgres:
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL required for postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.VFS.SlotKey == "" {
		return fmt.Errorf("VFS_SLOT_KEY must not be empty")
	}
	if c.VFS.SeedManifest != "" && c.VFS.SeedDir != "" {
		return fmt.Errorf("VFS_SEED_MANIFEST and VFS_SEED_DIR are mutually exclusive")
	}
	if c.Window.DefaultWidth <= 0 || c.Window.DefaultHeight <= 0 {
		return fmt.Errorf("default window size must be positive")
	}
	return nil
}
