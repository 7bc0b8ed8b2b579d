package user

import (
	"context"

	"github.com/hadirku/hadirku-backend-go/internal/pkg/validator"
)

// ========================================
// USER DTOs
// ========================================

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Unit     string `json:"unit"`
}

func (r *CreateUserRequest) Validate() error {
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

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.Unit) {
		errs = append(errs, validator.ValidationError{
			Field:   "unit",
			Message: "unit is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OldPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "old_password",
			Message: "old_password is required",
		})
	}

	if validator.IsEmpty(r.NewPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResetPasswordRequest struct {
	UserID      string `json:"-"`
	NewPassword string `json:"new_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.NewPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Unit     string `json:"unit"`
	Role     string `json:"role"`
}

// UserService manages the account directory.
type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}
