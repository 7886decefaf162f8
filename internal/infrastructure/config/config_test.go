package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "limitlessos_vfs", cfg.VFS.SlotKey)
	assert.Equal(t, "blake2b", cfg.VFS.Checksum)
	assert.Equal(t, int64(1), cfg.Window.BaseZOrder)
	assert.Equal(t, 800, cfg.Window.DefaultWidth)
	assert.Equal(t, 600, cfg.Window.DefaultHeight)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefaultOnEmptyEnvironment(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"STORAGE_BACKEND":          "file",
		"STORAGE_DIR":              "/var/lib/limitless",
		"STORAGE_COMPRESS":         "true",
		"STORAGE_BREAKER_COOLDOWN": "5s",
		"VFS_SLOT_KEY":             "custom_slot",
		"VFS_CHECKSUM":             "sha256",
		"WINDOW_BASE_Z":            "100",
		"WINDOW_DEFAULT_WIDTH":     "640",
		"WINDOW_DEFAULT_HEIGHT":    "480",
		"LOG_LEVEL":                "debug",
		"LOG_DEV":                  "true",
		"METRICS_ENABLED":          "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/var/lib/limitless", cfg.Storage.Dir)
	assert.True(t, cfg.Storage.Compress)
	assert.Equal(t, 5*time.Second, cfg.Storage.BreakerCooldown)
	assert.Equal(t, uint32(5), cfg.Storage.BreakerFailures)
	assert.Equal(t, "custom_slot", cfg.VFS.SlotKey)
	assert.Equal(t, "sha256", cfg.VFS.Checksum)
	assert.Equal(t, int64(100), cfg.Window.BaseZOrder)
	assert.Equal(t, 640, cfg.Window.DefaultWidth)
	assert.Equal(t, 480, cfg.Window.DefaultHeight)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsInvalidBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "floppy")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default", mutate: func(*Config) {}},
		{name: "postgres without url", mutate: func(c *Config) { c.Storage.Backend = BackendPostgres }, wantErr: true},
		{name: "postgres with url", mutate: func(c *Config) {
			c.Storage.Backend = BackendPostgres
			c.Storage.PostgresURL = "postgres://localhost/limitless"
		}},
		{name: "s3 without bucket", mutate: func(c *Config) {
			c.Storage.Backend = BackendS3
			c.Storage.S3Bucket = ""
		}, wantErr: true},
		{name: "empty slot key", mutate: func(c *Config) { c.VFS.SlotKey = "" }, wantErr: true},
		{name: "two seeds", mutate: func(c *Config) {
			c.VFS.SeedManifest = "seed.yaml"
			c.VFS.SeedDir = "/srv/seed"
		}, wantErr: true},
		{name: "zero width", mutate: func(c *Config) { c.Window.DefaultWidth = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
