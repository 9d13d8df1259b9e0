package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGRepoCreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	user := User{ID: "user-1", Username: "budi", Role: RoleUser}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Username, "user").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Username, "user").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(context.Background(), user); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, username, role, created_at, updated_at\\s+FROM users\\s+WHERE id = \\$1").
		WithArgs(DefaultAdminID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "role", "created_at", "updated_at"}).
			AddRow(DefaultAdminID, "admin1", "admin", created, created))
	mock.ExpectQuery("FROM users\\s+WHERE id = \\$1").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	user, err := repo.GetByID(context.Background(), DefaultAdminID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Role != RoleAdmin || user.Username != "admin1" || !user.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", user)
	}
	if _, err := repo.GetByID(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
