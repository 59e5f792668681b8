package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/internal/accounts/store"
	"github.com/gymloop/accounts/pkg/cryptox"
)

// ErrInvalidCredentials is returned on signin whether the username is unknown
// or the password is wrong, so the API boundary leaks neither.
var ErrInvalidCredentials = errors.New("service: invalid credentials")

// DefaultBio is assigned to profiles created during signup.
const DefaultBio = "I have not written my bio yet"

type AuthService struct {
	Users    *UserService
	Profiles *ProfileService
	Tokens   *TokenService
}

type SignUpParams struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
}

// AuthResult is what both signup and signin return: a session token and the
// user's profile.
type AuthResult struct {
	AccessToken string
	Profile     domain.Profile
}

// SignUp creates the user, then the bound profile, then issues a token.
// The two writes are separate statements, not a transaction: a profile
// failure leaves the user row in place with no compensating delete.
func (s *AuthService) SignUp(ctx context.Context, params SignUpParams) (AuthResult, error) {
	user, err := s.Users.CreateUser(ctx, params.Username, params.Password, domain.RoleUser)
	if err != nil {
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	profile, err := s.Profiles.CreateProfile(ctx, CreateProfileParams{
		UserID:    user.ID,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Bio:       DefaultBio,
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("create profile: %w", err)
	}

	token, err := s.Tokens.Issue(user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	return AuthResult{AccessToken: token, Profile: profile}, nil
}

// SignIn verifies the credential and issues a token. Unknown usernames and
// wrong passwords collapse into the same ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (AuthResult, error) {
	user, err := s.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("verify password: %w", err)
	}

	profile, err := s.Profiles.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("lookup profile: %w", err)
	}

	token, err := s.Tokens.Issue(user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	return AuthResult{AccessToken: token, Profile: profile}, nil
}
