package collections

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hadirku/hadirku-backend-go/internal/domain/user"
	"github.com/hadirku/hadirku-backend-go/internal/repository/docstore"
)

type storedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Unit     string `json:"unit"`
	Role     string `json:"role"`
}

type userRepository struct {
	store docstore.Store
}

func NewUserRepository(store docstore.Store) user.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) load(ctx context.Context) ([]storedUser, error) {
	data, err := r.store.Load(ctx, docstore.CollectionAccounts)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var users []storedUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode accounts collection: %w", err)
	}
	return users, nil
}

func (r *userRepository) save(ctx context.Context, users []storedUser) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode accounts collection: %w", err)
	}
	return r.store.Save(ctx, docstore.CollectionAccounts, data)
}

func toStoredUser(u user.User) storedUser {
	return storedUser{
		ID:       u.ID,
		Username: u.Username,
		Password: u.Password,
		FullName: u.FullName,
		Unit:     u.Unit,
		Role:     string(u.Role),
	}
}

func toDomainUser(s storedUser) user.User {
	return user.User{
		ID:       s.ID,
		Username: s.Username,
		Password: s.Password,
		FullName: s.FullName,
		Unit:     s.Unit,
		Role:     user.Role(s.Role),
	}
}

// GetByCredentials implements user.UserRepository.
func (r *userRepository) GetByCredentials(ctx context.Context, username, password string) (user.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return user.User{}, err
	}

	for _, u := range users {
		if u.Username == username && u.Password == password {
			return toDomainUser(u), nil
		}
	}

	return user.User{}, user.ErrUserNotFound
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return user.User{}, err
	}

	for _, u := range users {
		if u.ID == id {
			return toDomainUser(u), nil
		}
	}

	return user.User{}, user.ErrUserNotFound
}

// Create implements user.UserRepository. Usernames are deliberately not
// checked for duplicates; the directory keeps the source system's lenient
// append-only contract.
func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return user.User{}, err
	}

	users = append(users, toStoredUser(newUser))
	if err := r.save(ctx, users); err != nil {
		return user.User{}, err
	}

	return newUser, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	users, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range users {
		if users[i].ID == userID {
			users[i].Password = password
			return r.save(ctx, users)
		}
	}

	return user.ErrUserNotFound
}

// List implements user.UserRepository.
func (r *userRepository) List(ctx context.Context) ([]user.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]user.User, 0, len(users))
	for _, u := range users {
		result = append(result, toDomainUser(u))
	}
	return result, nil
}
