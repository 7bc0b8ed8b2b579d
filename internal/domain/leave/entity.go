package leave

import "time"

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "PENDING"
	LeaveRequestStatusApproved LeaveRequestStatus = "APPROVED"
	LeaveRequestStatusRejected LeaveRequestStatus = "REJECTED"
)

type Decision string

const (
	DecisionApprove Decision = "APPROVED"
	DecisionReject  Decision = "REJECTED"
)

// LeaveRequest entity. Status leaves PENDING exactly once and never
// returns.
type LeaveRequest struct {
	ID           string
	UserID       string
	UserFullName string
	UserUnit     string
	Date         string // YYYY-MM-DD, the day the requester wants excused
	Reason       string
	Status       LeaveRequestStatus
	RequestDate  time.Time
}
