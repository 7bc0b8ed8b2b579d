package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrAlreadyCheckedIn     = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut    = errors.New("you have already checked out today")
	ErrNotCheckedIn         = errors.New("you have not checked in today")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")
	ErrAttendanceNotFound   = errors.New("attendance record not found")
)

// OutOfRangeError carries the measured distance and the allowed radius so
// the caller can display both. It matches ErrOutsideAllowedRadius under
// errors.Is.
type OutOfRangeError struct {
	DistanceMeters float64
	RadiusMeters   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("you are outside the allowed radius: %.0f m away, allowed %d m", e.DistanceMeters, e.RadiusMeters)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutsideAllowedRadius
}
