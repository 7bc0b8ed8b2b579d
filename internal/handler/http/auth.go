package http

import (
	"encoding/json"
	"net/http"

	"github.com/hadirku/hadirku-backend-go/internal/domain/auth"
	"github.com/hadirku/hadirku-backend-go/internal/domain/user"
	"github.com/hadirku/hadirku-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.AuthService
	userService user.UserService
}

func NewAuthHandler(authService auth.AuthService, userService user.UserService) AuthHandler {
	return &authHandlerImpl{
		authService: authService,
		userService: userService,
	}
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", result)
}

// ChangePassword implements AuthHandler. The acting user comes from the
// session token.
func (h *authHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req user.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.userService.ChangePassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed", nil)
}
