package service

import (
	"context"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/internal/accounts/store"
	"github.com/gymloop/accounts/pkg/idx"
)

type ProfileService struct {
	Store store.Store
}

type CreateProfileParams struct {
	UserID     string
	FirstName  string
	LastName   string
	Bio        string
	WorkoutIDs []string
	RoutineIDs []string
}

// UpdateProfileParams is a partial update; nil fields are left untouched.
type UpdateProfileParams struct {
	FirstName  *string
	LastName   *string
	Bio        *string
	WorkoutIDs *[]string
	RoutineIDs *[]string
}

func (s *ProfileService) CreateProfile(
	ctx context.Context,
	params CreateProfileParams,
) (domain.Profile, error) {
	p := domain.Profile{
		ID:         idx.New().String(),
		UserID:     params.UserID,
		FirstName:  params.FirstName,
		LastName:   params.LastName,
		Bio:        params.Bio,
		WorkoutIDs: params.WorkoutIDs,
		RoutineIDs: params.RoutineIDs,
	}

	if err := s.Store.Profiles().CreateProfile(ctx, p); err != nil {
		return domain.Profile{}, err
	}

	return s.Store.Profiles().GetProfileByID(ctx, p.ID)
}

func (s *ProfileService) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	return s.Store.Profiles().GetProfileByID(ctx, id)
}

func (s *ProfileService) GetProfileByUserID(
	ctx context.Context,
	userID string,
) (domain.Profile, error) {
	return s.Store.Profiles().GetProfileByUserID(ctx, userID)
}

func (s *ProfileService) UpdateProfile(
	ctx context.Context,
	id string,
	params UpdateProfileParams,
) (domain.Profile, error) {
	return s.Store.Profiles().UpdateProfile(ctx, id, store.ProfilePatch{
		FirstName:  params.FirstName,
		LastName:   params.LastName,
		Bio:        params.Bio,
		WorkoutIDs: params.WorkoutIDs,
		RoutineIDs: params.RoutineIDs,
	})
}

func (s *ProfileService) DeleteProfile(ctx context.Context, id string) error {
	return s.Store.Profiles().DeleteProfile(ctx, id)
}

func (s *ProfileService) ListProfiles(
	ctx context.Context,
	opts store.ListOptions,
) ([]domain.Profile, error) {
	return s.Store.Profiles().ListProfiles(ctx, opts)
}
