// Package validate holds the explicit per-input validation functions that run
// before a request reaches a service. Violations aggregate into a single 400
// response at the boundary.
package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/internal/accounts/store"
	"github.com/gymloop/accounts/pkg/idx"
)

const (
	UsernameMinLen = 4
	UsernameMaxLen = 20
	PasswordMinLen = 8
)

// Violation is a single failed constraint on one field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations aggregates every failed constraint for one request.
type Violations []Violation

func (v Violations) Error() string { return strings.Join(v.Messages(), "; ") }

// Messages returns the violation messages in order.
func (v Violations) Messages() []string {
	out := make([]string, len(v))
	for i, violation := range v {
		out[i] = violation.Message
	}
	return out
}

func (v *Violations) add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

type SignUpInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type SignInInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserInput struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type CreateProfileInput struct {
	UserID     string   `json:"userId"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Bio        string   `json:"bio"`
	WorkoutIDs []string `json:"workoutsIds"`
	RoutineIDs []string `json:"routinesIds"`
}

type UpdateProfileInput struct {
	FirstName  *string   `json:"firstName"`
	LastName   *string   `json:"lastName"`
	Bio        *string   `json:"bio"`
	WorkoutIDs *[]string `json:"workoutsIds"`
	RoutineIDs *[]string `json:"routinesIds"`
}

// SignUp validates the signup payload, including the username-must-not-exist
// check against the credential store.
func SignUp(ctx context.Context, users store.Users, in SignUpInput) Violations {
	var v Violations

	checkAlpha(&v, "firstName", in.FirstName)
	checkAlpha(&v, "lastName", in.LastName)
	checkUsername(&v, "username", in.Username)
	checkStrongPassword(&v, "password", in.Password)

	if in.Username != "" {
		if userExists(ctx, users, in.Username) {
			v.add("username", "User with this username already exists")
		}
	}

	return v
}

// SignIn validates the signin payload. The username-must-exist check responds
// "User not found" before the credential is ever verified, which is a
// different message than the service's "Invalid credentials" path.
func SignIn(ctx context.Context, users store.Users, in SignInInput) Violations {
	var v Violations

	if in.Username == "" {
		v.add("username", "Username is required")
	} else if !userExists(ctx, users, in.Username) {
		v.add("username", "User not found")
	}

	checkStrongPassword(&v, "password", in.Password)

	return v
}

// CreateUser validates the admin user-creation payload.
func CreateUser(ctx context.Context, users store.Users, in CreateUserInput) Violations {
	var v Violations

	checkUsername(&v, "username", in.Username)
	checkStrongPassword(&v, "password", in.Password)

	if in.Username != "" && userExists(ctx, users, in.Username) {
		v.add("username", "Username already exists")
	}
	if in.Role != "" && !domain.Role(in.Role).Valid() {
		v.add("role", fmt.Sprintf("role must be one of %s, %s", domain.RoleUser, domain.RoleAdmin))
	}

	return v
}

// UpdateUser validates only the fields present in the patch.
func UpdateUser(ctx context.Context, users store.Users, in UpdateUserInput) Violations {
	var v Violations

	if in.Username != nil {
		checkUsername(&v, "username", *in.Username)
		if *in.Username != "" && userExists(ctx, users, *in.Username) {
			v.add("username", "Username already exists")
		}
	}
	if in.Password != nil {
		checkStrongPassword(&v, "password", *in.Password)
	}
	if in.Role != nil && !domain.Role(*in.Role).Valid() {
		v.add("role", fmt.Sprintf("role must be one of %s, %s", domain.RoleUser, domain.RoleAdmin))
	}

	return v
}

// CreateProfile validates the profile-creation payload; the referenced user
// must exist at creation time (the only referential integrity check there is).
func CreateProfile(ctx context.Context, users store.Users, in CreateProfileInput) Violations {
	var v Violations

	checkAlpha(&v, "firstName", in.FirstName)
	checkAlpha(&v, "lastName", in.LastName)

	if in.UserID == "" {
		v.add("userId", "userId is required")
	} else if !userIDExists(ctx, users, in.UserID) {
		v.add("userId", "User does not exist")
	}

	checkIDList(&v, "workoutsIds", in.WorkoutIDs)
	checkIDList(&v, "routinesIds", in.RoutineIDs)

	return v
}

// UpdateProfile validates only the fields present in the patch.
func UpdateProfile(in UpdateProfileInput) Violations {
	var v Violations

	if in.FirstName != nil {
		checkAlpha(&v, "firstName", *in.FirstName)
	}
	if in.LastName != nil {
		checkAlpha(&v, "lastName", *in.LastName)
	}
	if in.WorkoutIDs != nil {
		checkIDList(&v, "workoutsIds", *in.WorkoutIDs)
	}
	if in.RoutineIDs != nil {
		checkIDList(&v, "routinesIds", *in.RoutineIDs)
	}

	return v
}

func checkAlpha(v *Violations, field, value string) {
	if value == "" {
		v.add(field, field+" is required")
		return
	}
	for _, r := range value {
		if !unicode.IsLetter(r) {
			v.add(field, field+" must contain only letters")
			return
		}
	}
}

func checkUsername(v *Violations, field, value string) {
	if value == "" {
		v.add(field, "Username is required")
		return
	}
	if len(value) < UsernameMinLen {
		v.add(field, fmt.Sprintf("username must be longer than or equal to %d characters", UsernameMinLen))
	}
	if len(value) > UsernameMaxLen {
		v.add(field, fmt.Sprintf("username must be shorter than or equal to %d characters", UsernameMaxLen))
	}
}

// checkStrongPassword enforces the composition policy: at least 8 characters
// with one lowercase, one uppercase, one digit and one symbol each.
func checkStrongPassword(v *Violations, field, value string) {
	if value == "" {
		v.add(field, "Password is required")
		return
	}

	var lower, upper, digit, symbol bool
	for _, r := range value {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	if len(value) < PasswordMinLen || !lower || !upper || !digit || !symbol {
		v.add(field, "password is not strong enough")
	}
}

func checkIDList(v *Violations, field string, ids []string) {
	for _, id := range ids {
		if !idx.IsValid(id) {
			v.add(field, "each value in "+field+" must be a valid id")
			return
		}
	}
}

// userExists is the one place business data leaks into validation: an
// asynchronous lookup against the credential store at validation time.
func userExists(ctx context.Context, users store.Users, username string) bool {
	_, err := users.GetUserByUsername(ctx, username)
	return !errors.Is(err, store.ErrNotFound) && err == nil
}

func userIDExists(ctx context.Context, users store.Users, id string) bool {
	_, err := users.GetUserByID(ctx, id)
	return err == nil
}
