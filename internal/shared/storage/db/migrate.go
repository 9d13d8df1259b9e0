package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

// RunMigrations applies the embedded SQL migrations for dialect via goose.
// A nil database is a no-op.
func RunMigrations(ctx context.Context, database *sql.DB, dialect string) error {
	if database == nil {
		return nil
	}
	dir, err := migrationDir(dialect)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, dir)
}

// MigrationVersion reports the latest applied migration version.
func MigrationVersion(ctx context.Context, database *sql.DB, dialect string) (int64, error) {
	if _, err := migrationDir(dialect); err != nil {
		return 0, err
	}
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect(dialect); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, database)
}

func migrationDir(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "migrations/postgres", nil
	case DialectSQLite:
		return "migrations/sqlite", nil
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", dialect)
	}
}
