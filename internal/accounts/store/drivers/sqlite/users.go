package sqlite

import (
	"context"
	"strings"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/internal/accounts/store"
)

// userColumns maps list-API property names to users table columns.
var userColumns = map[string]string{
	"id":       "id",
	"username": "username",
	"role":     "role",
}

const userSelect = `SELECT id, username, password_hash, role, created_at, updated_at FROM users`

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role) VALUES (?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, string(u.Role),
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, userSelect+` WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, userSelect+` WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) UpdateUser(
	ctx context.Context,
	id string,
	patch store.UserPatch,
) (domain.User, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if patch.Username != nil {
		set = append(set, "username = ?")
		args = append(args, *patch.Username)
	}
	if patch.PasswordHash != nil {
		set = append(set, "password_hash = ?")
		args = append(args, *patch.PasswordHash)
	}
	if patch.Role != nil {
		set = append(set, "role = ?")
		args = append(args, string(*patch.Role))
	}

	if len(set) > 0 {
		set = append(set, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, id)

		res, err := r.db.ExecContext(ctx,
			`UPDATE users SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return domain.User{}, mapConstraint(err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return domain.User{}, err
		}
		if affected == 0 {
			return domain.User{}, store.ErrNotFound
		}
	}

	return r.GetUserByID(ctx, id)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
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

func (r *usersRepo) ListUsers(
	ctx context.Context,
	opts store.ListOptions,
) ([]domain.User, error) {
	clauses, args, err := buildListClauses(opts, userColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, userSelect+" "+clauses, toAnySlice(args)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	return u, nil
}
