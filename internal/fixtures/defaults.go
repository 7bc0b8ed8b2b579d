package fixtures

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hadirku/hadirku-backend-go/internal/domain/user"
)

// SeedDefaultAdmin creates the initial administrator account when the
// directory is empty, so a fresh install is usable without manual data
// entry. The password is intended to be changed on first login.
func SeedDefaultAdmin(ctx context.Context, userRepo user.UserRepository) error {
	accounts, err := userRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(accounts) > 0 {
		return nil
	}

	_, err = userRepo.Create(ctx, user.User{
		ID:       uuid.NewString(),
		Username: "admin",
		Password: "123456",
		FullName: "Administrator",
		Unit:     "IT Dept",
		Role:     user.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}
	return nil
}
