package collections

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hadirku/hadirku-backend-go/internal/domain/config"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/geo"
	"github.com/hadirku/hadirku-backend-go/internal/repository/docstore"
)

type storedConfig struct {
	OfficeLocation *geo.Coordinates `json:"office_location,omitempty"`
	OfficeName     *string          `json:"office_name,omitempty"`
	RadiusMeters   int              `json:"radius_meters"`
}

type configRepository struct {
	store docstore.Store
}

func NewConfigRepository(store docstore.Store) config.ConfigRepository {
	return &configRepository{store: store}
}

// Get implements config.ConfigRepository. The config is created lazily:
// an unwritten collection yields the defaults.
func (r *configRepository) Get(ctx context.Context) (config.SystemConfig, error) {
	data, err := r.store.Load(ctx, docstore.CollectionConfig)
	if err != nil {
		return config.SystemConfig{}, err
	}
	if data == nil {
		return config.Default(), nil
	}

	var stored storedConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		return config.SystemConfig{}, fmt.Errorf("failed to decode config collection: %w", err)
	}

	return config.SystemConfig{
		OfficeLocation: stored.OfficeLocation,
		OfficeName:     stored.OfficeName,
		RadiusMeters:   stored.RadiusMeters,
	}, nil
}

// Save implements config.ConfigRepository.
func (r *configRepository) Save(ctx context.Context, cfg config.SystemConfig) error {
	data, err := json.Marshal(storedConfig{
		OfficeLocation: cfg.OfficeLocation,
		OfficeName:     cfg.OfficeName,
		RadiusMeters:   cfg.RadiusMeters,
	})
	if err != nil {
		return fmt.Errorf("failed to encode config collection: %w", err)
	}
	return r.store.Save(ctx, docstore.CollectionConfig, data)
}
