package leave

import (
	"context"

	"github.com/hadirku/hadirku-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE DTOs
// ========================================

type SubmitLeaveRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid YYYY-MM-DD date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideLeaveRequest struct {
	ID       string `json:"-"`
	Decision Decision
}

type LeaveRequestResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	UserFullName string `json:"user_full_name"`
	UserUnit     string `json:"user_unit"`
	Date         string `json:"date"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
	RequestDate  string `json:"request_date"`
}

// LeaveService is the request/approve/reject workflow. A request is decided
// at most once; the decision is irreversible.
type LeaveService interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	Decide(ctx context.Context, req DecideLeaveRequest) (LeaveRequestResponse, error)
	GetMyRequests(ctx context.Context) ([]LeaveRequestResponse, error)
	ListRequests(ctx context.Context) ([]LeaveRequestResponse, error)
}
