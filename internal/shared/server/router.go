package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"survey-backend/internal/services/health"
	"survey-backend/internal/shared/config"
	"survey-backend/internal/shared/metrics"
	"survey-backend/internal/shared/server/middleware"
	"survey-backend/internal/surveylogic"
	"survey-backend/internal/surveys"
	"survey-backend/internal/users"
)

// RouterDeps holds handlers and services the router wires up.
type RouterDeps struct {
	Config        config.Config
	Health        *health.Service
	UserHandler   *users.Handler
	UserService   *users.Service
	LogicHandler  *surveylogic.Handler
	SurveyHandler *surveys.Handler
	Limiter       *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Identity(),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: rateLimitGroup,
			Limiter:  deps.Limiter,
			Rules: map[string]middleware.RateLimitRule{
				middleware.RateLimitGroupSubmit: middleware.PerMinute(deps.Config.SubmitRatePerMinute),
			},
		}),
	)

	api := r.Group("/api/v1")
	if deps.Health != nil {
		deps.Health.RegisterRoutes(api)
	}
	api.GET("/metrics", metrics.Handler())
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterPublicRoutes(api)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireUser())
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(authed)
	}
	if deps.LogicHandler != nil {
		deps.LogicHandler.RegisterRoutes(authed)
	}
	if deps.SurveyHandler != nil {
		deps.SurveyHandler.RegisterRoutes(authed)
	}

	if deps.LogicHandler != nil && deps.UserService != nil {
		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(deps.UserService.RoleOf, string(users.RoleAdmin)))
		deps.LogicHandler.RegisterAdminRoutes(admin)
	}

	return r
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/surveys" {
		return middleware.RateLimitGroupSubmit
	}
	return middleware.RateLimitGroupDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
