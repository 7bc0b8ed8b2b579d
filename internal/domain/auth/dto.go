package auth

import (
	"context"

	"github.com/hadirku/hadirku-backend-go/internal/domain/user"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/validator"
)

// ========================================
// AUTH DTOs
// ========================================

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenResponse struct {
	AccessToken           string            `json:"access_token"`
	AccessTokenExpiresIn  int64             `json:"access_token_expires_in"`
	RefreshToken          string            `json:"refresh_token"`
	RefreshTokenExpiresIn int64             `json:"refresh_token_expires_in"`
	User                  user.UserResponse `json:"user"`
}

// AuthService checks credentials and issues session tokens. The credential
// check is a plain string comparison against the stored account; tokens are
// transport plumbing on top of it.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
}
