package service

import (
	"context"
	"testing"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/internal/accounts/store"
	"github.com/gymloop/accounts/pkg/cryptox"
	"github.com/gymloop/accounts/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestUserServiceCreateUser(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	t.Run("defaults role to USER", func(t *testing.T) {
		u, err := svc.CreateUser(ctx, "alice", "Str0ng!pass", "")
		require.NoError(t, err)
		require.Equal(t, domain.RoleUser, u.Role)
		require.True(t, idx.IsValid(u.ID))
		require.False(t, u.CreatedAt.IsZero())
	})

	t.Run("keeps an explicit role", func(t *testing.T) {
		u, err := svc.CreateUser(ctx, "boss", "Str0ng!pass", domain.RoleAdmin)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, u.Role)
	})

	t.Run("never stores the plaintext", func(t *testing.T) {
		u, err := svc.CreateUser(ctx, "carol", "Str0ng!pass", "")
		require.NoError(t, err)
		require.NotContains(t, u.PasswordHash, "Str0ng!pass")
		require.NoError(t, cryptox.VerifyPassword("Str0ng!pass", u.PasswordHash))
	})
}

func TestUserServiceUpdateUser(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "alice", "Str0ng!pass", "")
	require.NoError(t, err)

	t.Run("rehashes a new password", func(t *testing.T) {
		newPass := "An0ther!pass"
		updated, err := svc.UpdateUser(ctx, u.ID, UpdateUserParams{Password: &newPass})
		require.NoError(t, err)
		require.NotEqual(t, u.PasswordHash, updated.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword(newPass, updated.PasswordHash))
		require.ErrorIs(t,
			cryptox.VerifyPassword("Str0ng!pass", updated.PasswordHash),
			cryptox.ErrPasswordMismatch,
		)
	})

	t.Run("missing user", func(t *testing.T) {
		username := "nobody"
		_, err := svc.UpdateUser(ctx, idx.New().String(), UpdateUserParams{Username: &username})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestBootstrapEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	newBootstrap := func(t *testing.T) (*BootstrapService, store.Store) {
		st := newTestStore(t)
		users := &UserService{Store: st}
		profiles := &ProfileService{Store: st}
		return &BootstrapService{Store: st, Users: users, Profiles: profiles}, st
	}

	t.Run("seeds admin with profile on empty database", func(t *testing.T) {
		bs, st := newBootstrap(t)
		require.NoError(t, bs.EnsureAdmin(ctx, "admin", "Adm1n!pass"))

		admin, err := st.Users().GetUserByUsername(ctx, "admin")
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, admin.Role)

		profile, err := st.Profiles().GetProfileByUserID(ctx, admin.ID)
		require.NoError(t, err)
		require.Equal(t, DefaultBio, profile.Bio)
	})

	t.Run("no-op without credentials", func(t *testing.T) {
		bs, st := newBootstrap(t)
		require.NoError(t, bs.EnsureAdmin(ctx, "", ""))

		empty, err := st.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)
	})

	t.Run("no-op when users exist", func(t *testing.T) {
		bs, st := newBootstrap(t)
		users := &UserService{Store: st}
		_, err := users.CreateUser(ctx, "existing", "Str0ng!pass", "")
		require.NoError(t, err)

		require.NoError(t, bs.EnsureAdmin(ctx, "admin", "Adm1n!pass"))

		_, err = st.Users().GetUserByUsername(ctx, "admin")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
