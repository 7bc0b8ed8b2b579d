package attendance

import "time"

type Status string

const (
	StatusOnTime Status = "ON_TIME"
	StatusLate   Status = "LATE"
)

// AttendanceRecord is one employee's attendance for one calendar day.
// (UserID, Date) is the natural key: at most one record exists per user per
// date. The record is created at check-in and mutated exactly once to add
// the check-out half, after which it is terminal for the day.
type AttendanceRecord struct {
	ID           string
	UserID       string
	UserFullName string
	UserUnit     string
	Date         string // YYYY-MM-DD, derived from the caller-supplied clock

	CheckInTime     time.Time
	CheckInLocation string
	CheckInPhotoURL string
	Status          Status

	CheckOutTime     *time.Time
	CheckOutLocation *string
	CheckOutPhotoURL *string
}

// CheckedOut reports whether the check-out half has been recorded.
func (r *AttendanceRecord) CheckedOut() bool {
	return r.CheckOutTime != nil
}
