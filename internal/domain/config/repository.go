package config

import "context"

// ConfigRepository persists the singleton system config.
type ConfigRepository interface {
	// Get returns the stored config, or Default() when none has been saved
	Get(ctx context.Context) (SystemConfig, error)

	// Save overwrites the stored config
	Save(ctx context.Context, cfg SystemConfig) error
}
