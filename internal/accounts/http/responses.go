package http

import (
	"time"

	"github.com/gymloop/accounts/internal/accounts/domain"
)

// UserResponse is the public wire shape of a user. The password hash never
// leaves the service.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProfileResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Bio        string    `json:"bio"`
	WorkoutIDs []string  `json:"workoutsIds"`
	RoutineIDs []string  `json:"routinesIds"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AuthResponse is returned by both signup and signin.
type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	Profile     ProfileResponse `json:"profile"`
}

// ListResponse wraps a page of items. TotalItems counts the returned page,
// not the full result set.
type ListResponse[T any] struct {
	TotalItems int `json:"totalItems"`
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Size       int `json:"size"`
}

// HealthResponse is shared by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toProfileResponse(p domain.Profile) ProfileResponse {
	workouts := p.WorkoutIDs
	if workouts == nil {
		workouts = []string{}
	}
	routines := p.RoutineIDs
	if routines == nil {
		routines = []string{}
	}

	return ProfileResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Bio:        p.Bio,
		WorkoutIDs: workouts,
		RoutineIDs: routines,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
