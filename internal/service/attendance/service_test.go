package attendance

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirku/hadirku-backend-go/internal/domain/attendance"
	"github.com/hadirku/hadirku-backend-go/internal/domain/config"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/geo"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/validator"
	"github.com/hadirku/hadirku-backend-go/internal/repository/collections"
	"github.com/hadirku/hadirku-backend-go/internal/repository/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFileService struct{}

func (stubFileService) UploadAttendanceProof(ctx context.Context, userID string, date string, file io.Reader, filename string, phase string) (string, error) {
	return "attendance/" + userID + "/" + date + "-" + phase + ".jpg", nil
}

func (stubFileService) GetFileURL(path string) string {
	return "http://localhost:8080/uploads/" + path
}

type stubGeocoder struct {
	place string
	err   error
}

func (g stubGeocoder) ResolvePlaceName(ctx context.Context, latitude, longitude float64) (string, error) {
	return g.place, g.err
}

var (
	officeCenter = geo.Coordinates{Latitude: -6.2000, Longitude: 106.8000}
	pointNearby  = geo.Coordinates{Latitude: -6.1995503, Longitude: 106.8000} // ~50 m north
	pointFarAway = geo.Coordinates{Latitude: -6.1986510, Longitude: 106.8000} // ~150 m north
)

func newTestService(t *testing.T, at time.Time) (*AttendanceServiceImpl, attendance.AttendanceRepository, config.ConfigRepository) {
	t.Helper()
	store := docstore.NewMemoryStore()
	attendanceRepo := collections.NewAttendanceRepository(store)
	configRepo := collections.NewConfigRepository(store)

	svc := NewAttendanceService(attendanceRepo, configRepo, stubFileService{}, nil, "07:00:00", time.UTC)
	svc.now = func() time.Time { return at }
	return svc, attendanceRepo, configRepo
}

func setOffice(t *testing.T, configRepo config.ConfigRepository, radiusMeters int) {
	t.Helper()
	center := officeCenter
	err := configRepo.Save(context.Background(), config.SystemConfig{
		OfficeLocation: &center,
		RadiusMeters:   radiusMeters,
	})
	require.NoError(t, err)
}

func sessionContext(t *testing.T, userID, fullName, unit string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id":   userID,
		"full_name": fullName,
		"unit":      unit,
		"role":      "USER",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func checkInRequest(point geo.Coordinates) attendance.CheckInRequest {
	return attendance.CheckInRequest{
		Latitude:   point.Latitude,
		Longitude:  point.Longitude,
		FileHeader: &multipart.FileHeader{Filename: "proof.jpg", Size: 1024},
	}
}

func checkOutRequest(point geo.Coordinates) attendance.CheckOutRequest {
	return attendance.CheckOutRequest{
		Latitude:   point.Latitude,
		Longitude:  point.Longitude,
		FileHeader: &multipart.FileHeader{Filename: "proof.jpg", Size: 1024},
	}
}

func TestCheckIn_OnTimeInsideRadius(t *testing.T) {
	at := time.Date(2025, 3, 10, 6, 59, 59, 0, time.UTC)
	svc, _, configRepo := newTestService(t, at)
	setOffice(t, configRepo, 100)
	ctx := sessionContext(t, "u1", "Budi Santoso", "IT")

	resp, err := svc.CheckIn(ctx, checkInRequest(pointNearby))

	require.NoError(t, err)
	assert.Equal(t, "ON_TIME", resp.Status)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, "Budi Santoso", resp.UserFullName)
	assert.Equal(t, "IT", resp.UserUnit)
	assert.Nil(t, resp.CheckOutTime)
	assert.NotEmpty(t, resp.CheckInPhotoURL)
}

// Exactly the cutoff second is still on time; LATE needs strictly later.
func TestCheckIn_CutoffBoundary(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{"at cutoff", time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC), "ON_TIME"},
		{"one second after", time.Date(2025, 3, 10, 7, 0, 1, 0, time.UTC), "LATE"},
		{"mid morning", time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), "LATE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, configRepo := newTestService(t, tc.at)
			setOffice(t, configRepo, 100)
			ctx := sessionContext(t, "u1", "Budi", "IT")

			resp, err := svc.CheckIn(ctx, checkInRequest(pointNearby))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.Status)
		})
	}
}

func TestCheckIn_OutsideRadius(t *testing.T) {
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, attendanceRepo, configRepo := newTestService(t, at)
	setOffice(t, configRepo, 100)
	ctx := sessionContext(t, "u1", "Budi", "IT")

	_, err := svc.CheckIn(ctx, checkInRequest(pointFarAway))

	assert.ErrorIs(t, err, attendance.ErrOutsideAllowedRadius)

	var oor *attendance.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.InDelta(t, 150, oor.DistanceMeters, 1)
	assert.Equal(t, 100, oor.RadiusMeters)

	// A rejected check-in must leave no record behind.
	record, repoErr := attendanceRepo.GetByUserAndDate(ctx, "u1", "2025-03-10")
	require.NoError(t, repoErr)
	assert.Nil(t, record)
}

// A point at exactly the radius distance is inside; the boundary is
// inclusive.
func TestCheckIn_RadiusBoundaryInclusive(t *testing.T) {
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, _, configRepo := newTestService(t, at)

	distance := geo.DistanceMeters(pointFarAway, officeCenter)
	setOffice(t, configRepo, int(distance)+1)
	ctx := sessionContext(t, "u1", "Budi", "IT")

	_, err := svc.CheckIn(ctx, checkInRequest(pointFarAway))
	assert.NoError(t, err)
}

// With no office configured the geofence is not enforced at all.
func TestCheckIn_NoOfficeConfigured(t *testing.T) {
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, at)
	ctx := sessionContext(t, "u1", "Budi", "IT")

	_, err := svc.CheckIn(ctx, checkInRequest(pointFarAway))
	assert.NoError(t, err)
}

func TestCheckIn_Twice(t *testing.T) {
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, _, configRepo := newTestService(t, at)
	setOffice(t, configRepo, 100)
	ctx := sessionContext(t, "u1", "Budi", "IT")

	_, err := svc.CheckIn(ctx, checkInRequest(pointNearby))
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, checkInRequest(pointNearby))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_CompletesTheDay(t *testing.T) {
	morning := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, _, configRepo := newTestService(t, morning)
	setOffice(t, configRepo, 100)
	ctx := sessionContext(t, "u1", "Budi", "IT")

	_, err := svc.CheckIn(ctx, checkInRequest(pointNearby))
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC) }

	// Check-out has no geofence check, even from far away.
	resp, err := svc.CheckOut(ctx, checkOutRequest(pointFarAway))
	require.NoError(t, err)
	require.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, "2025-03-10 17:00:00", *resp.CheckOutTime)
	require.NotNil(t, resp.CheckOutLocation)
	require.NotNil(t, resp.CheckOutPhotoURL)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	at := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, at)
	ctx := sessionContext(t, "u1", "Budi", "IT")

	_, err := svc.CheckOut(ctx, checkOutRequest(pointNearby))
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_Twice(t *testing.T) {
	svc, _, configRepo := newTestService(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	setOffice(t, configRepo, 100)
	ctx := sessionContext(t, "u1", "Budi", "IT")

	_, err := svc.CheckIn(ctx, checkInRequest(pointNearby))
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC) }
	_, err = svc.CheckOut(ctx, checkOutRequest(pointNearby))
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, checkOutRequest(pointNearby))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

// Once checked out, even a new check-in attempt for the same day is
// rejected as already checked out; the day is terminal.
func TestCheckIn_AfterCheckOut(t *testing.T) {
	svc, _, configRepo := newTestService(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	setOffice(t, configRepo, 100)
	ctx := sessionContext(t, "u1", "Budi", "IT")

	_, err := svc.CheckIn(ctx, checkInRequest(pointNearby))
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, checkOutRequest(pointNearby))
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, checkInRequest(pointNearby))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

// A new calendar day resets the state machine.
func TestCheckIn_NextDayStartsFresh(t *testing.T) {
	svc, _, configRepo := newTestService(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	setOffice(t, configRepo, 100)
	ctx := sessionContext(t, "u1", "Budi", "IT")

	_, err := svc.CheckIn(ctx, checkInRequest(pointNearby))
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, checkOutRequest(pointNearby))
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC) }
	resp, err := svc.CheckIn(ctx, checkInRequest(pointNearby))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", resp.Date)
}

func TestCheckIn_GeocoderFallback(t *testing.T) {
	svc, _, configRepo := newTestService(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	setOffice(t, configRepo, 100)
	svc.geocoder = stubGeocoder{err: errors.New("geocoder unreachable")}
	ctx := sessionContext(t, "u1", "Budi", "IT")

	resp, err := svc.CheckIn(ctx, checkInRequest(pointNearby))
	require.NoError(t, err)
	assert.Equal(t, "-6.19955, 106.80000", resp.CheckInLocation)
}

func TestCheckIn_GeocoderResolvesPlaceName(t *testing.T) {
	svc, _, configRepo := newTestService(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	setOffice(t, configRepo, 100)
	svc.geocoder = stubGeocoder{place: "Jl. Sudirman No. 1, Jakarta"}
	ctx := sessionContext(t, "u1", "Budi", "IT")

	resp, err := svc.CheckIn(ctx, checkInRequest(pointNearby))
	require.NoError(t, err)
	assert.Equal(t, "Jl. Sudirman No. 1, Jakarta", resp.CheckInLocation)
}

func TestCheckIn_RejectsMissingPhoto(t *testing.T) {
	svc, _, configRepo := newTestService(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	setOffice(t, configRepo, 100)
	ctx := sessionContext(t, "u1", "Budi", "IT")

	req := checkInRequest(pointNearby)
	req.FileHeader = nil

	_, err := svc.CheckIn(ctx, req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "photo")
}

func TestGetToday(t *testing.T) {
	svc, _, configRepo := newTestService(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	setOffice(t, configRepo, 100)
	ctx := sessionContext(t, "u1", "Budi", "IT")

	resp, err := svc.GetToday(ctx)
	require.NoError(t, err)
	assert.Nil(t, resp)

	_, err = svc.CheckIn(ctx, checkInRequest(pointNearby))
	require.NoError(t, err)

	resp, err = svc.GetToday(ctx)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "2025-03-10", resp.Date)
}

func TestGetMyAttendance_OnlyOwnRecords(t *testing.T) {
	svc, _, configRepo := newTestService(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	setOffice(t, configRepo, 100)

	_, err := svc.CheckIn(sessionContext(t, "u1", "Budi", "IT"), checkInRequest(pointNearby))
	require.NoError(t, err)
	_, err = svc.CheckIn(sessionContext(t, "u2", "Siti", "Finance"), checkInRequest(pointNearby))
	require.NoError(t, err)

	mine, err := svc.GetMyAttendance(sessionContext(t, "u1", "Budi", "IT"))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "u1", mine[0].UserID)

	all, err := svc.ListAttendance(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
