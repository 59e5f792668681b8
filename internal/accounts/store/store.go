package store

import (
	"context"
	"errors"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/internal/accounts/listing"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// ListOptions carries the translated list parameters into a driver. Drivers
// apply filter, then sort, then offset/limit, in that fixed order.
type ListOptions struct {
	Page   listing.Page
	Sort   *listing.Sort   // nil means natural order
	Filter *listing.Filter // nil means no predicate
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Username     *string
	PasswordHash *string
	Role         *domain.Role
}

// ProfilePatch is a partial update; nil fields are left untouched.
type ProfilePatch struct {
	FirstName  *string
	LastName   *string
	Bio        *string
	WorkoutIDs *[]string
	RoutineIDs *[]string
}

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Profiles() Profiles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back on error and
	// committing on nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store with Commit/Rollback added.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	// A duplicate username fails with ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is the signin lookup path.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// UpdateUser applies the non-nil patch fields, bumps updated_at and
	// returns the updated record. Missing rows fail with ErrNotFound.
	UpdateUser(ctx context.Context, id string, patch UserPatch) (domain.User, error)

	// DeleteUser removes the user. Missing rows fail with ErrNotFound.
	// Profiles are NOT cascaded.
	DeleteUser(ctx context.Context, id string) error

	// ListUsers applies filter, sort, then offset/limit.
	ListUsers(ctx context.Context, opts ListOptions) ([]domain.User, error)

	// IsEmpty reports whether there are no users (bootstrap check).
	IsEmpty(ctx context.Context) (bool, error)
}

type Profiles interface {
	CreateProfile(ctx context.Context, p domain.Profile) error

	GetProfileByID(ctx context.Context, id string) (domain.Profile, error)

	// GetProfileByUserID is the primary lookup path used by auth.
	GetProfileByUserID(ctx context.Context, userID string) (domain.Profile, error)

	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (domain.Profile, error)

	// DeleteProfile removes the profile independently of its user.
	DeleteProfile(ctx context.Context, id string) error

	ListProfiles(ctx context.Context, opts ListOptions) ([]domain.Profile, error)
}
