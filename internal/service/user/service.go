package user

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/hadirku/hadirku-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
	}
}

func toUserResponse(account user.User) user.UserResponse {
	return user.UserResponse{
		ID:       account.ID,
		Username: account.Username,
		FullName: account.FullName,
		Unit:     account.Unit,
		Role:     string(account.Role),
	}
}

// Create implements user.UserService. New accounts always get the USER
// role; admins are seeded, never created through this path. Duplicate
// usernames are accepted as-is.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	account := user.User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Unit:     req.Unit,
		Role:     user.RoleUser,
	}

	created, err := s.UserRepository.Create(ctx, account)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserResponse(created), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	accounts, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, toUserResponse(account))
	}
	return responses, nil
}

// ChangePassword implements user.UserService. The old password must match
// the stored one exactly; on mismatch nothing is mutated.
func (s *UserServiceImpl) ChangePassword(ctx context.Context, req user.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return fmt.Errorf("user_id claim is missing or invalid")
	}

	account, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if account.Password != req.OldPassword {
		return user.ErrOldPasswordMismatch
	}

	if err := s.UserRepository.UpdatePassword(ctx, userID, req.NewPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// ResetPassword implements user.UserService. Admin path: no old-password
// check.
func (s *UserServiceImpl) ResetPassword(ctx context.Context, req user.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.UserRepository.GetByID(ctx, req.UserID); err != nil {
		return err
	}

	if err := s.UserRepository.UpdatePassword(ctx, req.UserID, req.NewPassword); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}
