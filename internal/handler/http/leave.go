package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hadirku/hadirku-backend-go/internal/domain/leave"
	"github.com/hadirku/hadirku-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Submit implements LeaveHandler.
func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// GetMyRequests implements LeaveHandler.
func (h *leaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.GetMyRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LeaveHandler. Admin only, every user's requests.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ListRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, decision leave.Decision) {
	id := chi.URLParam(r, "id")

	result, err := h.leaveService.Decide(r.Context(), leave.DecideLeaveRequest{
		ID:       id,
		Decision: decision,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+string(result.Status), result)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.DecisionApprove)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.DecisionReject)
}
