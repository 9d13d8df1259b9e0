package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"survey-backend/internal/services/health"
	"survey-backend/internal/shared/cache"
	"survey-backend/internal/shared/config"
	"survey-backend/internal/shared/server"
	"survey-backend/internal/shared/server/middleware"
	"survey-backend/internal/shared/storage/db"
	"survey-backend/internal/shared/telemetry"
	"survey-backend/internal/surveylogic"
	"survey-backend/internal/surveys"
	"survey-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	Redis         *redis.Client
	LogicRepo     surveylogic.Repo
	UsersRepo     users.Repo
	SurveysRepo   surveys.Repo
	LogicService  *surveylogic.Service
	UsersService  *users.Service
	SurveyService *surveys.Service
	Health        *health.Service
	LogicHandler  *surveylogic.Handler
	UsersHandler  *users.Handler
	SurveyHandler *surveys.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.StoreDriver) == "" {
		cfg.StoreDriver = config.DriverMemory
	}
	if strings.TrimSpace(cfg.DefaultAdminUsername) == "" {
		cfg.DefaultAdminUsername = "admin1"
	}
	ctx := context.Background()

	sqlDB, driver, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cfg.StoreDriver = driver

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Redis:  buildRedis(ctx, cfg),
	}

	if err := buildServices(ctx, app); err != nil {
		app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		Health:        app.Health,
		UserHandler:   app.UsersHandler,
		UserService:   app.UsersService,
		LogicHandler:  app.LogicHandler,
		SurveyHandler: app.SurveyHandler,
		Limiter:       middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}

// buildDB opens the configured SQL store and migrates it. Dev-like
// environments fall back to memory when the store is unreachable.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, string, error) {
	var (
		sqlDB   *sql.DB
		dialect string
		err     error
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		telemetry.Info("bootstrap.store", map[string]any{"driver": config.DriverMemory})
		return nil, config.DriverMemory, nil
	case config.DriverPostgres:
		dialect = db.DialectPostgres
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	case config.DriverSQLite:
		dialect = db.DialectSQLite
		sqlDB, err = db.OpenSQLite(ctx, cfg.SQLitePath, db.SQLiteOptions())
	default:
		return nil, "", fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB, dialect); err != nil {
			sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.store_fallback", map[string]any{
				"driver": cfg.StoreDriver,
				"error":  err,
			})
			return nil, config.DriverMemory, nil
		}
		return nil, "", err
	}

	telemetry.Info("bootstrap.store", map[string]any{"driver": cfg.StoreDriver})
	return sqlDB, cfg.StoreDriver, nil
}

// buildRedis connects the optional rule base cache. It never fails the
// build; without Redis reads go straight to the store.
func buildRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		telemetry.Warn("bootstrap.redis_unavailable", map[string]any{"error": err})
		return nil
	}
	return client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(ctx context.Context, app *App) error {
	switch app.Config.StoreDriver {
	case config.DriverPostgres:
		app.LogicRepo = &surveylogic.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.SurveysRepo = &surveys.PGRepo{DB: app.DB}
	case config.DriverSQLite:
		app.LogicRepo = &surveylogic.SQLiteRepo{DB: app.DB}
		app.UsersRepo = &users.SQLiteRepo{DB: app.DB}
		app.SurveysRepo = &surveys.SQLiteRepo{DB: app.DB}
	default:
		app.LogicRepo = surveylogic.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
		app.SurveysRepo = surveys.NewMemoryRepo()
	}

	logicRepo := app.LogicRepo
	if app.Redis != nil {
		logicRepo = &surveylogic.CachedRepo{
			Inner: app.LogicRepo,
			Cache: cache.Redis{Client: app.Redis},
			TTL:   app.Config.LogicCacheTTL,
		}
	}

	logicSvc := surveylogic.NewService(logicRepo)
	logicSvc.KeepEmptyRules = app.Config.KeepEmptyRules

	userSvc := users.NewService(app.UsersRepo)
	if err := userSvc.EnsureDefaultAdmin(ctx, app.Config.DefaultAdminUsername); err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}

	surveySvc := surveys.NewService(app.SurveysRepo, logicSvc)

	healthSvc := health.NewService(app.Config.StoreDriver)
	if app.DB != nil {
		healthSvc.Add("db", app.DB.PingContext)
	}
	if app.Redis != nil {
		healthSvc.Add("redis", cache.Redis{Client: app.Redis}.Ping)
	}

	app.LogicService = logicSvc
	app.UsersService = userSvc
	app.SurveyService = surveySvc
	app.Health = healthSvc
	app.LogicHandler = surveylogic.NewHandler(logicSvc)
	app.UsersHandler = users.NewHandler(userSvc)
	app.SurveyHandler = surveys.NewHandler(surveySvc)
	return nil
}
