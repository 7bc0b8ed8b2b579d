package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadirku/hadirku-backend-go/internal/domain/auth"
	"github.com/hadirku/hadirku-backend-go/internal/domain/user"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

// Login implements auth.AuthService. Credentials match on exact string
// equality of both username and password; any miss maps to the same
// invalid-credentials error so callers cannot probe for usernames.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := a.UserRepository.GetByCredentials(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by credentials: %w", err)
	}

	var tokenResponse auth.TokenResponse
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(account)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenResponse.User = user.UserResponse{
		ID:       account.ID,
		Username: account.Username,
		FullName: account.FullName,
		Unit:     account.Unit,
		Role:     string(account.Role),
	}

	return tokenResponse, nil
}
