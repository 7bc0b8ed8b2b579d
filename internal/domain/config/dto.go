package config

import (
	"context"

	"github.com/hadirku/hadirku-backend-go/internal/pkg/validator"
)

// ========================================
// CONFIG DTOs
// ========================================

// SetOfficeLocationRequest moves the office reference point. Radius and
// name are optional: absent fields keep their stored values, so setting the
// location never resets the allowed radius. Radius bounds are deliberately
// not validated; a nonsensical radius is an admin error, not a defect.
type SetOfficeLocationRequest struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	OfficeName   *string `json:"office_name,omitempty"`
	RadiusMeters *int    `json:"radius_meters,omitempty"`
}

func (r *SetOfficeLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SystemConfigResponse struct {
	OfficeLatitude  *float64 `json:"office_latitude,omitempty"`
	OfficeLongitude *float64 `json:"office_longitude,omitempty"`
	OfficeName      *string  `json:"office_name,omitempty"`
	RadiusMeters    int      `json:"radius_meters"`
}

// ConfigService reads and updates the office configuration.
type ConfigService interface {
	Get(ctx context.Context) (SystemConfigResponse, error)
	SetOfficeLocation(ctx context.Context, req SetOfficeLocationRequest) (SystemConfigResponse, error)
}
