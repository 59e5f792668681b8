package domain

import "time"

// Role is the access level carried in session tokens and checked per endpoint.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2id encoded, never the plaintext
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
