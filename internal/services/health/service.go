package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"survey-backend/internal/shared/server/respond"
	"survey-backend/internal/shared/telemetry"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// Report is the health payload. Checks maps each dependency to "ok" or the
// error it returned.
type Report struct {
	OK     bool              `json:"ok"`
	Store  string            `json:"store"`
	Checks map[string]string `json:"checks"`
}

// Service encapsulates health-related checks.
type Service struct {
	Store   string
	Timeout time.Duration
	checks  map[string]Check
}

// NewService constructs a new health service for the named store driver.
func NewService(store string) *Service {
	return &Service{Store: store, Timeout: 2 * time.Second, checks: map[string]Check{}}
}

// Add registers a named dependency check.
func (s *Service) Add(name string, check Check) {
	if check != nil {
		s.checks[name] = check
	}
}

// Status runs every check and reports ok only when all of them pass.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{OK: true, Store: s.Store, Checks: map[string]string{}}

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, s.Timeout)
		err := s.checks[name](checkCtx)
		cancel()
		if err != nil {
			report.OK = false
			report.Checks[name] = err.Error()
			telemetry.Warn("health.check_failed", map[string]any{"check": name, "error": err})
			continue
		}
		report.Checks[name] = "ok"
	}
	return report
}

// RegisterRoutes mounts GET /health. Failing checks answer 503.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		report := s.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})
}
