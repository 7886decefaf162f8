// Package config loads desktop core configuration from the environment.
//
// Every field has an envconfig key and a default, so an empty environment
// yields a working in-memory setup. Validate runs after loading and rejects
// backend selections that are missing their connection settings.
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	desk, err := desktop.New(ctx, cfg)
package config
