package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port                 string
	Env                  string
	CORSAllowOrigin      []string
	StoreDriver          string
	DatabaseURL          string
	SQLitePath           string
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	LogicCacheTTL        time.Duration
	LogLevel             string
	LogFormat            string
	KeepEmptyRules       bool
	DefaultAdminUsername string
	SubmitRatePerMinute  int
}

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads configuration from the environment, then from optional .env
// files, with sensible defaults.
func Load() Config {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(v, ".env", "cmd/.env")

	env := normalizeEnv(v.GetString("ENV"))
	driver := normalizeDriver(v.GetString("STORE_DRIVER"), v.GetString("DATABASE_URL"))

	if env == "production" && driver == DriverPostgres && v.GetString("DATABASE_URL") == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:                 v.GetString("PORT"),
		Env:                  env,
		CORSAllowOrigin:      splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		StoreDriver:          driver,
		DatabaseURL:          v.GetString("DATABASE_URL"),
		SQLitePath:           v.GetString("SQLITE_PATH"),
		RedisAddr:            strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		RedisDB:              v.GetInt("REDIS_DB"),
		LogicCacheTTL:        v.GetDuration("LOGIC_CACHE_TTL"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
		KeepEmptyRules:       v.GetBool("KEEP_EMPTY_RULES"),
		DefaultAdminUsername: v.GetString("DEFAULT_ADMIN_USERNAME"),
		SubmitRatePerMinute:  v.GetInt("RATE_LIMIT_SUBMIT_PER_MIN"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:8081")
	v.SetDefault("STORE_DRIVER", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "./data/survey.db")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOGIC_CACHE_TTL", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("KEEP_EMPTY_RULES", false)
	v.SetDefault("DEFAULT_ADMIN_USERNAME", "admin1")
	v.SetDefault("RATE_LIMIT_SUBMIT_PER_MIN", 30)
}

// loadEnvFiles merges KEY=VALUE files into v. Values already present in the
// process environment win because AutomaticEnv is consulted first.
func loadEnvFiles(v *viper.Viper, paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				log.Printf("config: ignoring %s: %v", path, err)
			}
		}
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

// normalizeDriver picks the store. An empty driver means postgres when a
// database URL is set and memory otherwise.
func normalizeDriver(raw, databaseURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg", "postgresql":
		return DriverPostgres
	case "sqlite", "sqlite3":
		return DriverSQLite
	case "memory", "mem":
		return DriverMemory
	default:
		if strings.TrimSpace(databaseURL) != "" {
			return DriverPostgres
		}
		return DriverMemory
	}
}
