package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/hadirku/hadirku-backend-go/internal/domain/leave"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository

	now func() time.Time
}

func NewLeaveService(leaveRequestRepository leave.LeaveRequestRepository) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		now:                    time.Now,
	}
}

func toLeaveRequestResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	return leave.LeaveRequestResponse{
		ID:           request.ID,
		UserID:       request.UserID,
		UserFullName: request.UserFullName,
		UserUnit:     request.UserUnit,
		Date:         request.Date,
		Reason:       request.Reason,
		Status:       string(request.Status),
		RequestDate:  request.RequestDate.Format("2006-01-02 15:04:05"),
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

// Submit implements leave.LeaveService. Submission always succeeds for a
// valid request: overlapping dates and duplicate requests are allowed, the
// admin sorts them out at decision time.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	userID, fullName, unit, err := sessionFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request := leave.LeaveRequest{
		ID:           uuid.NewString(),
		UserID:       userID,
		UserFullName: fullName,
		UserUnit:     unit,
		Date:         req.Date,
		Reason:       req.Reason,
		Status:       leave.LeaveRequestStatusPending,
		RequestDate:  s.now(),
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return toLeaveRequestResponse(created), nil
}

// Decide implements leave.LeaveService. A request is decided at most once;
// a second decision of either kind is rejected.
func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	if req.Decision != leave.DecisionApprove && req.Decision != leave.DecisionReject {
		return leave.LeaveRequestResponse{}, validator.ValidationErrors{
			{Field: "decision", Message: "decision must be APPROVED or REJECTED"},
		}
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	request.Status = leave.LeaveRequestStatus(req.Decision)

	if err := s.LeaveRequestRepository.Update(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return toLeaveRequestResponse(request), nil
}

// GetMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyRequests(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	userID, _, _, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.LeaveRequestRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toLeaveRequestResponse(request))
	}
	return responses, nil
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toLeaveRequestResponse(request))
	}
	return responses, nil
}
