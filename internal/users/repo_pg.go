package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, username, role, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())`
	_, err := r.DB.ExecContext(ctx, query, user.ID, user.Username, string(user.Role))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrUsernameTaken
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, username, role, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
SELECT id, username, role, created_at, updated_at
FROM users
WHERE username = $1
LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, username))
}

func scanUser(row *sql.Row) (User, error) {
	var user User
	var role string
	err := row.Scan(&user.ID, &user.Username, &role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.Role = Role(role)
	return user, nil
}
