package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/hadirku/hadirku-backend-go/internal/domain/attendance"
	"github.com/hadirku/hadirku-backend-go/internal/domain/config"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/geo"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/geocode"
	"github.com/hadirku/hadirku-backend-go/internal/service/file"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	config.ConfigRepository
	fileService file.FileService
	geocoder    geocode.ReverseGeocoder

	lateCutoff string // "15:04:05" wall-clock; strictly later means LATE
	location   *time.Location
	now        func() time.Time
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	configRepository config.ConfigRepository,
	fileService file.FileService,
	geocoder geocode.ReverseGeocoder,
	lateCutoff string,
	location *time.Location,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		ConfigRepository:     configRepository,
		fileService:          fileService,
		geocoder:             geocoder,
		lateCutoff:           lateCutoff,
		location:             location,
		now:                  time.Now,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func toAttendanceResponse(record attendance.AttendanceRecord) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:               record.ID,
		UserID:           record.UserID,
		UserFullName:     record.UserFullName,
		UserUnit:         record.UserUnit,
		Date:             record.Date,
		CheckInTime:      record.CheckInTime.Format("2006-01-02 15:04:05"),
		CheckInLocation:  record.CheckInLocation,
		CheckInPhotoURL:  record.CheckInPhotoURL,
		Status:           string(record.Status),
		CheckOutTime:     timePtrToString(record.CheckOutTime),
		CheckOutLocation: record.CheckOutLocation,
		CheckOutPhotoURL: record.CheckOutPhotoURL,
	}
}

func sessionFromContext(ctx context.Context) (userID, fullName, unit string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	fullName, _ = claims["full_name"].(string)
	unit, _ = claims["unit"].(string)
	return userID, fullName, unit, nil
}

// resolveLocation turns a coordinate pair into a display string. Reverse
// geocoding is best-effort: any failure falls back to the raw coordinates.
func (a *AttendanceServiceImpl) resolveLocation(ctx context.Context, lat, lon float64) string {
	if a.geocoder != nil {
		if place, err := a.geocoder.ResolvePlaceName(ctx, lat, lon); err == nil {
			return place
		}
	}
	return geo.FormatCoordinates(geo.Coordinates{Latitude: lat, Longitude: lon})
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, fullName, unit, err := sessionFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.location)
	dateLocal := nowLocal.Format("2006-01-02")

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, dateLocal)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil {
		if existing.CheckedOut() {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	cfg, err := a.ConfigRepository.Get(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get system config: %w", err)
	}

	// No office location configured means no geofence to enforce.
	if cfg.OfficeLocation != nil {
		point := geo.Coordinates{Latitude: req.Latitude, Longitude: req.Longitude}
		distance := geo.DistanceMeters(point, *cfg.OfficeLocation)
		if distance > float64(cfg.RadiusMeters) {
			return attendance.AttendanceResponse{}, &attendance.OutOfRangeError{
				DistanceMeters: distance,
				RadiusMeters:   cfg.RadiusMeters,
			}
		}
	}

	locationName := a.resolveLocation(ctx, req.Latitude, req.Longitude)

	uploadedPath, err := a.fileService.UploadAttendanceProof(ctx, userID, dateLocal, req.File, req.FileHeader.Filename, "check-in")
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to upload check-in proof: %w", err)
	}

	status := attendance.StatusOnTime
	if nowLocal.Format("15:04:05") > a.lateCutoff {
		status = attendance.StatusLate
	}

	record := attendance.AttendanceRecord{
		ID:              uuid.NewString(),
		UserID:          userID,
		UserFullName:    fullName,
		UserUnit:        unit,
		Date:            dateLocal,
		CheckInTime:     nowLocal,
		CheckInLocation: locationName,
		CheckInPhotoURL: a.fileService.GetFileURL(uploadedPath),
		Status:          status,
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return toAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. No geofence check on
// the way out: leaving the radius before checking out must not strand the
// record in the CHECKED_IN state.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, _, _, err := sessionFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.location)
	dateLocal := nowLocal.Format("2006-01-02")

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, dateLocal)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	locationName := a.resolveLocation(ctx, req.Latitude, req.Longitude)

	uploadedPath, err := a.fileService.UploadAttendanceProof(ctx, userID, dateLocal, req.File, req.FileHeader.Filename, "check-out")
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to upload check-out proof: %w", err)
	}

	photoURL := a.fileService.GetFileURL(uploadedPath)
	existing.CheckOutTime = &nowLocal
	existing.CheckOutLocation = &locationName
	existing.CheckOutPhotoURL = &photoURL

	if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return toAttendanceResponse(*existing), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (*attendance.AttendanceResponse, error) {
	userID, _, _, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	dateLocal := a.now().In(a.location).Format("2006-01-02")

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, dateLocal)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	resp := toAttendanceResponse(*record)
	return &resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	userID, _, _, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toAttendanceResponse(record))
	}
	return responses, nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toAttendanceResponse(record))
	}
	return responses, nil
}
