package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hadirku/hadirku-backend-go/internal/domain/user"
	"github.com/hadirku/hadirku-backend-go/internal/fixtures"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/jwt"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/storage"
	"github.com/hadirku/hadirku-backend-go/internal/repository/collections"
	"github.com/hadirku/hadirku-backend-go/internal/repository/docstore"
	attendanceService "github.com/hadirku/hadirku-backend-go/internal/service/attendance"
	authService "github.com/hadirku/hadirku-backend-go/internal/service/auth"
	configService "github.com/hadirku/hadirku-backend-go/internal/service/config"
	"github.com/hadirku/hadirku-backend-go/internal/service/file"
	leaveService "github.com/hadirku/hadirku-backend-go/internal/service/leave"
	reportService "github.com/hadirku/hadirku-backend-go/internal/service/report"
	userService "github.com/hadirku/hadirku-backend-go/internal/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	userRepo := collections.NewUserRepository(store)
	attendanceRepo := collections.NewAttendanceRepository(store)
	leaveRequestRepo := collections.NewLeaveRequestRepository(store)
	configRepo := collections.NewConfigRepository(store)

	require.NoError(t, fixtures.SeedDefaultAdmin(ctx, userRepo))
	_, err := userRepo.Create(ctx, user.User{
		ID: "u1", Username: "budi", Password: "rahasia", FullName: "Budi Santoso", Unit: "IT", Role: user.RoleUser,
	})
	require.NoError(t, err)

	uploadsDir := t.TempDir()
	fileStorage, err := storage.NewLocalStorage(uploadsDir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	fileSvc := file.NewFileService(fileStorage)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, configRepo, fileSvc, nil, "07:00:00", time.UTC)

	return NewRouter(jwtService, Handlers{
		Auth:       NewAuthHandler(authService.NewAuthService(userRepo, jwtService), userService.NewUserService(userRepo)),
		Attendance: NewAttendanceHandler(attendanceSvc),
		Leave:      NewLeaveHandler(leaveService.NewLeaveService(leaveRequestRepo)),
		User:       NewUserHandler(userService.NewUserService(userRepo)),
		Config:     NewConfigHandler(configService.NewConfigService(configRepo)),
		Report:     NewReportHandler(reportService.NewReportService(attendanceRepo)),
	}, uploadsDir)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)
	return envelope.Data.AccessToken
}

func checkInBody(t *testing.T, lat, lon float64) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	require.NoError(t, w.WriteField("data", fmt.Sprintf(`{"latitude": %f, "longitude": %f}`, lat, lon)))

	part, err := w.CreateFormFile("photo", "proof.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-jpeg-bytes"))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter(t)

	token := login(t, router, "admin", "123456")
	assert.NotEmpty(t, token)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/attendance/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnlyRoutes(t *testing.T) {
	router := newTestRouter(t)
	userToken := login(t, router, "budi", "rahasia")
	adminToken := login(t, router, "admin", "123456")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckInFlow(t *testing.T) {
	router := newTestRouter(t)
	adminToken := login(t, router, "admin", "123456")
	userToken := login(t, router, "budi", "rahasia")

	// Admin pins the office with a 100 m radius.
	rec := doJSON(t, router, http.MethodPut, "/api/v1/config/office-location", adminToken, map[string]interface{}{
		"latitude":      -6.2,
		"longitude":     106.8,
		"radius_meters": 100,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Check-in from ~150 m away is rejected with the measured distance.
	body, contentType := checkInBody(t, -6.1986510, 106.8)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+userToken)
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)
	require.Equal(t, http.StatusBadRequest, out.Code, out.Body.String())
	assert.Contains(t, out.Body.String(), "distance_meters")
	assert.Contains(t, out.Body.String(), `"radius_meters":"100"`)

	// Inside the radius it succeeds.
	body, contentType = checkInBody(t, -6.1995503, 106.8)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+userToken)
	out = httptest.NewRecorder()
	router.ServeHTTP(out, req)
	require.Equal(t, http.StatusCreated, out.Code, out.Body.String())

	// A second attempt the same day conflicts.
	body, contentType = checkInBody(t, -6.1995503, 106.8)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+userToken)
	out = httptest.NewRecorder()
	router.ServeHTTP(out, req)
	assert.Equal(t, http.StatusConflict, out.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/attendance/today", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Budi Santoso")
}

func TestLeaveRequestFlow(t *testing.T) {
	router := newTestRouter(t)
	adminToken := login(t, router, "admin", "123456")
	userToken := login(t, router, "budi", "rahasia")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/leave-requests", userToken, map[string]string{
		"date":   "2025-03-14",
		"reason": "family matter",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var submitted struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))

	// The requester cannot decide their own request.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/leave-requests/"+submitted.Data.ID+"/approve", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/leave-requests/"+submitted.Data.ID+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "APPROVED")

	// The decision is final.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/leave-requests/"+submitted.Data.ID+"/reject", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	router := newTestRouter(t)
	adminToken := login(t, router, "admin", "123456")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/export", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "date,full_name,unit,status")
}

func TestValidationErrorShape(t *testing.T) {
	router := newTestRouter(t)
	userToken := login(t, router, "budi", "rahasia")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/leave-requests", userToken, map[string]string{
		"date": "not-a-date",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, rec.Body.String(), "reason")
}
