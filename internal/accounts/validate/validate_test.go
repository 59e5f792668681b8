package validate

import (
	"context"
	"testing"
	"time"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/internal/accounts/store"
	"github.com/gymloop/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/gymloop/accounts/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, username string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "hash",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func messages(v Violations) []string { return v.Messages() }

func TestSignUpValidation(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "taken")
	ctx := context.Background()

	t.Run("valid input passes", func(t *testing.T) {
		v := SignUp(ctx, st.Users(), SignUpInput{
			FirstName: "Alice",
			LastName:  "Smith",
			Username:  "alice",
			Password:  "Str0ng!pass",
		})
		require.Empty(t, v)
	})

	t.Run("all failures aggregate", func(t *testing.T) {
		v := SignUp(ctx, st.Users(), SignUpInput{})
		require.Len(t, v, 4)
	})

	t.Run("names must be alphabetic", func(t *testing.T) {
		v := SignUp(ctx, st.Users(), SignUpInput{
			FirstName: "Alice3",
			LastName:  "Sm-ith",
			Username:  "alice",
			Password:  "Str0ng!pass",
		})
		require.Contains(t, messages(v), "firstName must contain only letters")
		require.Contains(t, messages(v), "lastName must contain only letters")
	})

	t.Run("username length bounds", func(t *testing.T) {
		v := SignUp(ctx, st.Users(), SignUpInput{
			FirstName: "Alice",
			LastName:  "Smith",
			Username:  "abc",
			Password:  "Str0ng!pass",
		})
		require.Contains(t, messages(v), "username must be longer than or equal to 4 characters")

		v = SignUp(ctx, st.Users(), SignUpInput{
			FirstName: "Alice",
			LastName:  "Smith",
			Username:  "thisusernameiswaytoolong",
			Password:  "Str0ng!pass",
		})
		require.Contains(t, messages(v), "username must be shorter than or equal to 20 characters")
	})

	t.Run("taken username is rejected", func(t *testing.T) {
		v := SignUp(ctx, st.Users(), SignUpInput{
			FirstName: "Alice",
			LastName:  "Smith",
			Username:  "taken",
			Password:  "Str0ng!pass",
		})
		require.Contains(t, messages(v), "User with this username already exists")
	})

	t.Run("weak passwords are rejected", func(t *testing.T) {
		for _, pw := range []string{
			"short1!A",  // valid, control case handled below
			"alllower1!",
			"ALLUPPER1!",
			"NoDigits!!",
			"NoSymbols1",
			"Sh0r!t",
		} {
			v := SignUp(ctx, st.Users(), SignUpInput{
				FirstName: "Alice",
				LastName:  "Smith",
				Username:  "alice",
				Password:  pw,
			})
			if pw == "short1!A" {
				require.Empty(t, v, "password %q should be strong enough", pw)
				continue
			}
			require.Contains(t, messages(v), "password is not strong enough", "password %q", pw)
		}
	})
}

func TestSignInValidation(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "alice")
	ctx := context.Background()

	t.Run("known user passes", func(t *testing.T) {
		v := SignIn(ctx, st.Users(), SignInInput{Username: "alice", Password: "Str0ng!pass"})
		require.Empty(t, v)
	})

	t.Run("unknown username reports User not found", func(t *testing.T) {
		v := SignIn(ctx, st.Users(), SignInInput{Username: "ghost", Password: "Str0ng!pass"})
		require.Contains(t, messages(v), "User not found")
	})

	t.Run("missing fields", func(t *testing.T) {
		v := SignIn(ctx, st.Users(), SignInInput{})
		require.Contains(t, messages(v), "Username is required")
		require.Contains(t, messages(v), "Password is required")
	})
}

func TestCreateUserValidation(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "taken")
	ctx := context.Background()

	t.Run("valid input passes", func(t *testing.T) {
		v := CreateUser(ctx, st.Users(), CreateUserInput{
			Username: "newadmin",
			Password: "Str0ng!pass",
			Role:     "ADMIN",
		})
		require.Empty(t, v)
	})

	t.Run("empty role is allowed", func(t *testing.T) {
		v := CreateUser(ctx, st.Users(), CreateUserInput{
			Username: "newuser",
			Password: "Str0ng!pass",
		})
		require.Empty(t, v)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		v := CreateUser(ctx, st.Users(), CreateUserInput{
			Username: "newuser",
			Password: "Str0ng!pass",
			Role:     "SUPERUSER",
		})
		require.Contains(t, messages(v), "role must be one of USER, ADMIN")
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		v := CreateUser(ctx, st.Users(), CreateUserInput{
			Username: "taken",
			Password: "Str0ng!pass",
		})
		require.Contains(t, messages(v), "Username already exists")
	})
}

func TestUpdateUserValidation(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "taken")
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }

	t.Run("empty patch passes", func(t *testing.T) {
		require.Empty(t, UpdateUser(ctx, st.Users(), UpdateUserInput{}))
	})

	t.Run("only present fields are checked", func(t *testing.T) {
		v := UpdateUser(ctx, st.Users(), UpdateUserInput{Password: strPtr("weak")})
		require.Len(t, v, 1)
		require.Contains(t, messages(v), "password is not strong enough")
	})

	t.Run("taken username is rejected", func(t *testing.T) {
		v := UpdateUser(ctx, st.Users(), UpdateUserInput{Username: strPtr("taken")})
		require.Contains(t, messages(v), "Username already exists")
	})

	t.Run("bad role is rejected", func(t *testing.T) {
		v := UpdateUser(ctx, st.Users(), UpdateUserInput{Role: strPtr("ROOT")})
		require.Contains(t, messages(v), "role must be one of USER, ADMIN")
	})
}

func TestCreateProfileValidation(t *testing.T) {
	st := newTestStore(t)
	owner := seedUser(t, st, "owner")
	ctx := context.Background()

	t.Run("valid input passes", func(t *testing.T) {
		v := CreateProfile(ctx, st.Users(), CreateProfileInput{
			UserID:    owner.ID,
			FirstName: "Alice",
			LastName:  "Smith",
		})
		require.Empty(t, v)
	})

	t.Run("missing userId", func(t *testing.T) {
		v := CreateProfile(ctx, st.Users(), CreateProfileInput{
			FirstName: "Alice",
			LastName:  "Smith",
		})
		require.Contains(t, messages(v), "userId is required")
	})

	t.Run("unknown userId", func(t *testing.T) {
		v := CreateProfile(ctx, st.Users(), CreateProfileInput{
			UserID:    idx.New().String(),
			FirstName: "Alice",
			LastName:  "Smith",
		})
		require.Contains(t, messages(v), "User does not exist")
	})

	t.Run("referenced ids must be ulids", func(t *testing.T) {
		v := CreateProfile(ctx, st.Users(), CreateProfileInput{
			UserID:     owner.ID,
			FirstName:  "Alice",
			LastName:   "Smith",
			WorkoutIDs: []string{idx.New().String(), "not-a-ulid"},
			RoutineIDs: []string{idx.New().String()},
		})
		require.Len(t, v, 1)
		require.Contains(t, messages(v), "each value in workoutsIds must be a valid id")
	})
}

func TestUpdateProfileValidation(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }

	require.Empty(t, UpdateProfile(UpdateProfileInput{}))
	require.Empty(t, UpdateProfile(UpdateProfileInput{FirstName: strPtr("Alice")}))

	v := UpdateProfile(UpdateProfileInput{FirstName: strPtr("Alice3"), LastName: strPtr("")})
	require.Contains(t, messages(v), "firstName must contain only letters")
	require.Contains(t, messages(v), "lastName is required")

	bad := []string{"123"}
	v = UpdateProfile(UpdateProfileInput{RoutineIDs: &bad})
	require.Contains(t, messages(v), "each value in routinesIds must be a valid id")
}
