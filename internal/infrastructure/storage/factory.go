package storage

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/resilience"
)

// Open builds the backend selected by cfg.Backend. Remote backends are
// wrapped in a circuit breaker unless cfg.BreakerFailures is zero.
func Open(ctx context.Context, cfg config.StorageConfig) (KV, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemoryKV(), nil
	case config.BackendFile:
		kv, err := NewFileKV(cfg.Dir, cfg.Compress)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case config.BackendS3:
		kv, err := NewS3KV(ctx, S3Config{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return guard(kv, "s3", cfg), nil
	case config.BackendPostgres:
		kv, err := NewPostgresKV(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		return guard(kv, "postgres", cfg), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func guard(kv KV, name string, cfg config.StorageConfig) KV {
	if cfg.BreakerFailures == 0 {
		return kv
	}
	return Guard(kv, name, resilience.Settings{
		FailureThreshold: cfg.BreakerFailures,
		Cooldown:         cfg.BreakerCooldown,
	})
}
