package leave

import "context"

// LeaveRequestRepository defines data access methods over the
// leave-requests collection, keyed by request id.
type LeaveRequestRepository interface {
	// Create persists a new leave request
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	// GetByID retrieves a request by id
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Update overwrites an existing request
	Update(ctx context.Context, request LeaveRequest) error

	// ListByUser returns a user's requests, most recent first
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)

	// List returns every request, most recent first
	List(ctx context.Context) ([]LeaveRequest, error)
}
