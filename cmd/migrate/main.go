package main

// Run database migrations for the configured store:
//   STORE_DRIVER=postgres DATABASE_URL=... go run ./cmd/migrate
//   STORE_DRIVER=sqlite SQLITE_PATH=./data/survey.db go run ./cmd/migrate

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"survey-backend/internal/shared/config"
	"survey-backend/internal/shared/storage/db"
	"survey-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer telemetry.Sync()
	ctx := context.Background()

	sqlDB, dialect, err := open(ctx, cfg)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB, dialect); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err})
		os.Exit(1)
	}
	version, err := db.MigrationVersion(ctx, sqlDB, dialect)
	if err != nil {
		telemetry.Error("migrate.version_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"dialect": dialect, "version": version})
}

func open(ctx context.Context, cfg config.Config) (*sql.DB, string, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
		return sqlDB, db.DialectPostgres, err
	case config.DriverSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath, db.SQLiteOptions())
		return sqlDB, db.DialectSQLite, err
	default:
		return nil, "", fmt.Errorf("STORE_DRIVER %q has nothing to migrate", cfg.StoreDriver)
	}
}
