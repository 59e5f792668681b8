package sqlite

import (
	"context"
	"strings"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/internal/accounts/store"
)

// profileColumns maps list-API property names to profiles table columns.
var profileColumns = map[string]string{
	"id":        "id",
	"userId":    "user_id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"bio":       "bio",
}

const profileSelect = `SELECT id, user_id, first_name, last_name, bio, workout_ids, routine_ids, created_at, updated_at FROM profiles`

type profilesRepo struct {
	db dbtx
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, first_name, last_name, bio, workout_ids, routine_ids)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.FirstName, p.LastName, p.Bio,
		joinIDs(p.WorkoutIDs), joinIDs(p.RoutineIDs),
	)
	return mapConstraint(err)
}

func (r *profilesRepo) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, profileSelect+` WHERE id = ?`, id)
	return scanProfile(row)
}

func (r *profilesRepo) GetProfileByUserID(
	ctx context.Context,
	userID string,
) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, profileSelect+` WHERE user_id = ?`, userID)
	return scanProfile(row)
}

func (r *profilesRepo) UpdateProfile(
	ctx context.Context,
	id string,
	patch store.ProfilePatch,
) (domain.Profile, error) {
	set := make([]string, 0, 6)
	args := make([]any, 0, 6)

	if patch.FirstName != nil {
		set = append(set, "first_name = ?")
		args = append(args, *patch.FirstName)
	}
	if patch.LastName != nil {
		set = append(set, "last_name = ?")
		args = append(args, *patch.LastName)
	}
	if patch.Bio != nil {
		set = append(set, "bio = ?")
		args = append(args, *patch.Bio)
	}
	if patch.WorkoutIDs != nil {
		set = append(set, "workout_ids = ?")
		args = append(args, joinIDs(*patch.WorkoutIDs))
	}
	if patch.RoutineIDs != nil {
		set = append(set, "routine_ids = ?")
		args = append(args, joinIDs(*patch.RoutineIDs))
	}

	if len(set) > 0 {
		set = append(set, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, id)

		res, err := r.db.ExecContext(ctx,
			`UPDATE profiles SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return domain.Profile{}, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return domain.Profile{}, err
		}
		if affected == 0 {
			return domain.Profile{}, store.ErrNotFound
		}
	}

	return r.GetProfileByID(ctx, id)
}

func (r *profilesRepo) DeleteProfile(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *profilesRepo) ListProfiles(
	ctx context.Context,
	opts store.ListOptions,
) ([]domain.Profile, error) {
	clauses, args, err := buildListClauses(opts, profileColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, profileSelect+" "+clauses, toAnySlice(args)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func scanProfile(row rowScanner) (domain.Profile, error) {
	var p domain.Profile
	var workouts, routines string
	err := row.Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Bio,
		&workouts, &routines, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	p.WorkoutIDs = splitIDs(workouts)
	p.RoutineIDs = splitIDs(routines)
	return p, nil
}
