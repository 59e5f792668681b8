package domain

import "time"

// Profile is the descriptive record owned by exactly one user. WorkoutIDs and
// RoutineIDs reference records managed by other services; they are opaque here.
type Profile struct {
	ID         string
	UserID     string
	FirstName  string
	LastName   string
	Bio        string
	WorkoutIDs []string
	RoutineIDs []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
