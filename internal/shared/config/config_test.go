package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.StoreDriver != DriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.StoreDriver)
	}
	if cfg.LogicCacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m cache ttl, got %s", cfg.LogicCacheTTL)
	}
	if cfg.DefaultAdminUsername != "admin1" {
		t.Fatalf("expected admin1, got %q", cfg.DefaultAdminUsername)
	}
	if cfg.KeepEmptyRules {
		t.Fatalf("expected KeepEmptyRules=false by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("STORE_DRIVER", "sqlite3")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("KEEP_EMPTY_RULES", "true")
	t.Setenv("LOGIC_CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test ,")

	cfg := Load()

	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if cfg.StoreDriver != DriverSQLite || cfg.SQLitePath != "/tmp/x.db" {
		t.Fatalf("unexpected sqlite config: %+v", cfg)
	}
	if !cfg.KeepEmptyRules {
		t.Fatalf("expected KeepEmptyRules=true")
	}
	if cfg.LogicCacheTTL != 30*time.Second {
		t.Fatalf("expected 30s, got %s", cfg.LogicCacheTTL)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadDatabaseURLImpliesPostgres(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/survey")

	if got := Load().StoreDriver; got != DriverPostgres {
		t.Fatalf("expected postgres, got %q", got)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\nREDIS_ADDR=localhost:6379\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected port from .env, got %q", cfg.Port)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected redis addr from .env, got %q", cfg.RedisAddr)
	}
}
