package attendance

import "context"

// AttendanceRepository defines data access methods over the attendance
// collection. The collection is keyed by (UserID, Date); GetByUserAndDate
// is how the state machine enforces the one-record-per-day invariant.
type AttendanceRepository interface {
	// Create persists a new attendance record
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// GetByUserAndDate retrieves the record for a user on a date, or nil if
	// none exists
	GetByUserAndDate(ctx context.Context, userID, date string) (*AttendanceRecord, error)

	// Update overwrites an existing record in place
	Update(ctx context.Context, record AttendanceRecord) error

	// ListByUser returns a user's records, most recent date first
	ListByUser(ctx context.Context, userID string) ([]AttendanceRecord, error)

	// List returns every record, most recent date first
	List(ctx context.Context) ([]AttendanceRecord, error)
}
