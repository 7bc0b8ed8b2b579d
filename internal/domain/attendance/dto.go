package attendance

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/hadirku/hadirku-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	Latitude   float64               `json:"latitude"`
	Longitude  float64               `json:"longitude"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	return validateAttendanceRequest(r.Latitude, r.Longitude, r.FileHeader)
}

type CheckOutRequest struct {
	Latitude   float64               `json:"latitude"`
	Longitude  float64               `json:"longitude"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	return validateAttendanceRequest(r.Latitude, r.Longitude, r.FileHeader)
}

func validateAttendanceRequest(lat, lon float64, fileHeader *multipart.FileHeader) error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(lon) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if fileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "attendance proof photo is required",
		})
	} else {
		filename := fileHeader.Filename
		dot := strings.LastIndex(filename, ".")
		ext := ""
		if dot >= 0 {
			ext = strings.ToLower(filename[dot:])
		}
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if fileHeader.Size > 10<<20 { // 10MB
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "attendance proof photo size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	UserFullName     string  `json:"user_full_name"`
	UserUnit         string  `json:"user_unit"`
	Date             string  `json:"date"`
	CheckInTime      string  `json:"check_in_time"`
	CheckInLocation  string  `json:"check_in_location"`
	CheckInPhotoURL  string  `json:"check_in_photo_url"`
	Status           string  `json:"status"`
	CheckOutTime     *string `json:"check_out_time,omitempty"`
	CheckOutLocation *string `json:"check_out_location,omitempty"`
	CheckOutPhotoURL *string `json:"check_out_photo_url,omitempty"`
}

// AttendanceService is the daily check-in/check-out state machine:
// NONE -> CHECKED_IN -> CHECKED_OUT, terminal for the day.
type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetToday returns the session user's record for the current date, or
	// nil when the day is still in the NONE state.
	GetToday(ctx context.Context) (*AttendanceResponse, error)

	GetMyAttendance(ctx context.Context) ([]AttendanceResponse, error)
	ListAttendance(ctx context.Context) ([]AttendanceResponse, error)
}
