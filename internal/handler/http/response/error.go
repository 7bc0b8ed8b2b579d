package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hadirku/hadirku-backend-go/internal/domain/attendance"
	"github.com/hadirku/hadirku-backend-go/internal/domain/auth"
	"github.com/hadirku/hadirku-backend-go/internal/domain/leave"
	"github.com/hadirku/hadirku-backend-go/internal/domain/user"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// The geofence rejection carries the measured distance and the allowed
	// radius for the client to display.
	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		BadRequest(w, "You are outside the allowed radius", map[string]string{
			"distance_meters": fmt.Sprintf("%.0f", outOfRange.DistanceMeters),
			"radius_meters":   fmt.Sprintf("%d", outOfRange.RadiusMeters),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrOldPasswordMismatch):
		BadRequest(w, "Old password does not match", nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You have already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "You have not checked in today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
