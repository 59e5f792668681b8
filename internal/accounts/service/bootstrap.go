package service

import (
	"context"
	"fmt"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/internal/accounts/store"
)

// BootstrapService seeds the first ADMIN account from configuration so a
// fresh deployment has someone able to reach the admin endpoints.
type BootstrapService struct {
	Store    store.Store
	Users    *UserService
	Profiles *ProfileService
}

// EnsureAdmin creates an admin user (and profile) when the users table is
// empty. It is a no-op when credentials are not configured or any user
// already exists.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("check users: %w", err)
	}
	if !empty {
		return nil
	}

	user, err := s.Users.CreateUser(ctx, username, password, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	if _, err := s.Profiles.CreateProfile(ctx, CreateProfileParams{
		UserID:    user.ID,
		FirstName: "Admin",
		LastName:  "Admin",
		Bio:       DefaultBio,
	}); err != nil {
		return fmt.Errorf("create admin profile: %w", err)
	}

	return nil
}
