package config

import (
	"context"
	"fmt"

	"github.com/hadirku/hadirku-backend-go/internal/domain/config"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/geo"
)

type ConfigServiceImpl struct {
	config.ConfigRepository
}

func NewConfigService(configRepository config.ConfigRepository) config.ConfigService {
	return &ConfigServiceImpl{
		ConfigRepository: configRepository,
	}
}

func toConfigResponse(cfg config.SystemConfig) config.SystemConfigResponse {
	resp := config.SystemConfigResponse{
		OfficeName:   cfg.OfficeName,
		RadiusMeters: cfg.RadiusMeters,
	}
	if cfg.OfficeLocation != nil {
		lat := cfg.OfficeLocation.Latitude
		lon := cfg.OfficeLocation.Longitude
		resp.OfficeLatitude = &lat
		resp.OfficeLongitude = &lon
	}
	return resp
}

// Get implements config.ConfigService.
func (s *ConfigServiceImpl) Get(ctx context.Context) (config.SystemConfigResponse, error) {
	cfg, err := s.ConfigRepository.Get(ctx)
	if err != nil {
		return config.SystemConfigResponse{}, fmt.Errorf("failed to get system config: %w", err)
	}
	return toConfigResponse(cfg), nil
}

// SetOfficeLocation implements config.ConfigService. Omitted fields keep
// their stored values, so updating the location never resets the radius or
// the office name.
func (s *ConfigServiceImpl) SetOfficeLocation(ctx context.Context, req config.SetOfficeLocationRequest) (config.SystemConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return config.SystemConfigResponse{}, err
	}

	cfg, err := s.ConfigRepository.Get(ctx)
	if err != nil {
		return config.SystemConfigResponse{}, fmt.Errorf("failed to get system config: %w", err)
	}

	cfg.OfficeLocation = &geo.Coordinates{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if req.OfficeName != nil {
		cfg.OfficeName = req.OfficeName
	}
	if req.RadiusMeters != nil {
		cfg.RadiusMeters = *req.RadiusMeters
	}

	if err := s.ConfigRepository.Save(ctx, cfg); err != nil {
		return config.SystemConfigResponse{}, fmt.Errorf("failed to save system config: %w", err)
	}

	return toConfigResponse(cfg), nil
}
