package service

import (
	"context"
	"fmt"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/internal/accounts/store"
	"github.com/gymloop/accounts/pkg/cryptox"
	"github.com/gymloop/accounts/pkg/idx"
)

type UserService struct {
	Store store.Store
}

// UpdateUserParams is a partial update; nil fields are left untouched.
// Password, when set, is the plaintext and gets hashed here.
type UpdateUserParams struct {
	Username *string
	Password *string
	Role     *domain.Role
}

// CreateUser hashes the password and inserts a new user. An empty role
// defaults to USER.
func (s *UserService) CreateUser(
	ctx context.Context,
	username, password string,
	role domain.Role,
) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	if role == "" {
		role = domain.RoleUser
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		return domain.User{}, err
	}

	// Re-read so the store-assigned timestamps are populated.
	return s.Store.Users().GetUserByID(ctx, u.ID)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

func (s *UserService) GetUserByUsername(
	ctx context.Context,
	username string,
) (domain.User, error) {
	return s.Store.Users().GetUserByUsername(ctx, username)
}

// UpdateUser applies a partial update, hashing the password if present.
func (s *UserService) UpdateUser(
	ctx context.Context,
	id string,
	params UpdateUserParams,
) (domain.User, error) {
	patch := store.UserPatch{
		Username: params.Username,
		Role:     params.Role,
	}

	if params.Password != nil {
		hash, err := cryptox.HashPassword(*params.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	return s.Store.Users().UpdateUser(ctx, id, patch)
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.Store.Users().DeleteUser(ctx, id)
}

func (s *UserService) ListUsers(
	ctx context.Context,
	opts store.ListOptions,
) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx, opts)
}
