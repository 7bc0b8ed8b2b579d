package user

import "context"

// UserRepository defines data access methods over the accounts collection.
type UserRepository interface {
	// GetByCredentials returns the user whose username AND password match
	// exactly. No normalization, no case folding.
	GetByCredentials(ctx context.Context, username, password string) (User, error)

	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id string) (User, error)

	// Create appends a new account. Duplicate usernames are not rejected;
	// the directory is append-only and lenient by contract.
	Create(ctx context.Context, newUser User) (User, error)

	// UpdatePassword overwrites the stored password
	UpdatePassword(ctx context.Context, userID, password string) error

	// List returns every account
	List(ctx context.Context) ([]User, error)
}
