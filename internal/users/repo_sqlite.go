package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
)

// SQLiteRepo stores users in SQLite with timestamps as unix milliseconds.
type SQLiteRepo struct {
	DB *sql.DB
}

func (r *SQLiteRepo) Create(ctx context.Context, user User) error {
	now := time.Now().UTC().UnixMilli()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (id, username, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, string(user.Role), now, now,
	)
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		return ErrUsernameTaken
	}
	return err
}

func (r *SQLiteRepo) GetByID(ctx context.Context, userID string) (User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, username, role, created_at, updated_at FROM users WHERE id = ? LIMIT 1`, userID)
	return scanSQLiteUser(row)
}

func (r *SQLiteRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, username, role, created_at, updated_at FROM users WHERE username = ? LIMIT 1`, username)
	return scanSQLiteUser(row)
}

func scanSQLiteUser(row *sql.Row) (User, error) {
	var user User
	var role string
	var createdAt, updatedAt int64
	if err := row.Scan(&user.ID, &user.Username, &role, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.Role = Role(role)
	user.CreatedAt = time.UnixMilli(createdAt).UTC()
	user.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return user, nil
}
