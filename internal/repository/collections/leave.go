package collections

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/hadirku/hadirku-backend-go/internal/domain/leave"
	"github.com/hadirku/hadirku-backend-go/internal/repository/docstore"
)

type storedLeaveRequest struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	UserFullName string    `json:"user_full_name"`
	UserUnit     string    `json:"user_unit"`
	Date         string    `json:"date"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	RequestDate  time.Time `json:"request_date"`
}

type leaveRequestRepository struct {
	store docstore.Store
}

func NewLeaveRequestRepository(store docstore.Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{store: store}
}

func (r *leaveRequestRepository) load(ctx context.Context) ([]storedLeaveRequest, error) {
	data, err := r.store.Load(ctx, docstore.CollectionLeaveRequests)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var requests []storedLeaveRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode leave-requests collection: %w", err)
	}
	return requests, nil
}

func (r *leaveRequestRepository) save(ctx context.Context, requests []storedLeaveRequest) error {
	data, err := json.Marshal(requests)
	if err != nil {
		return fmt.Errorf("failed to encode leave-requests collection: %w", err)
	}
	return r.store.Save(ctx, docstore.CollectionLeaveRequests, data)
}

func toStoredLeaveRequest(req leave.LeaveRequest) storedLeaveRequest {
	return storedLeaveRequest{
		ID:           req.ID,
		UserID:       req.UserID,
		UserFullName: req.UserFullName,
		UserUnit:     req.UserUnit,
		Date:         req.Date,
		Reason:       req.Reason,
		Status:       string(req.Status),
		RequestDate:  req.RequestDate,
	}
}

func toDomainLeaveRequest(s storedLeaveRequest) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:           s.ID,
		UserID:       s.UserID,
		UserFullName: s.UserFullName,
		UserUnit:     s.UserUnit,
		Date:         s.Date,
		Reason:       s.Reason,
		Status:       leave.LeaveRequestStatus(s.Status),
		RequestDate:  s.RequestDate,
	}
}

func sortRecentRequests(requests []storedLeaveRequest) {
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].RequestDate.After(requests[j].RequestDate)
	})
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	requests, err := r.load(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	requests = append(requests, toStoredLeaveRequest(request))
	if err := r.save(ctx, requests); err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	requests, err := r.load(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	for _, req := range requests {
		if req.ID == id {
			return toDomainLeaveRequest(req), nil
		}
	}

	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Update(ctx context.Context, request leave.LeaveRequest) error {
	requests, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range requests {
		if requests[i].ID == request.ID {
			requests[i] = toStoredLeaveRequest(request)
			return r.save(ctx, requests)
		}
	}

	return leave.ErrLeaveRequestNotFound
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	requests, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var mine []storedLeaveRequest
	for _, req := range requests {
		if req.UserID == userID {
			mine = append(mine, req)
		}
	}
	sortRecentRequests(mine)

	result := make([]leave.LeaveRequest, 0, len(mine))
	for _, req := range mine {
		result = append(result, toDomainLeaveRequest(req))
	}
	return result, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) List(ctx context.Context) ([]leave.LeaveRequest, error) {
	requests, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	sortRecentRequests(requests)

	result := make([]leave.LeaveRequest, 0, len(requests))
	for _, req := range requests {
		result = append(result, toDomainLeaveRequest(req))
	}
	return result, nil
}
