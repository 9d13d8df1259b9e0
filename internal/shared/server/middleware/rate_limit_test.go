package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func submitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/surveys" {
		return RateLimitGroupSubmit
	}
	return RateLimitGroupDefault
}

func newLimitedRouter(now *time.Time, rules map[string]RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(func() time.Time { return *now })
	r := gin.New()
	r.Use(Identity())
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: submitGroup,
		Limiter:  limiter,
		Rules:    rules,
	}))
	r.POST("/api/v1/surveys", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	r.GET("/api/v1/surveys", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(r *gin.Engine, method, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1/surveys", nil)
	if userID != "" {
		req.Header.Set(UserIDHeader, userID)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRateLimitSubmitGroupOnly(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedRouter(&now, map[string]RateLimitRule{
		RateLimitGroupSubmit: {Rate: 1, Burst: 2},
	})

	for i := 0; i < 2; i++ {
		if resp := doRequest(r, http.MethodPost, "user-1"); resp.Code != http.StatusCreated {
			t.Fatalf("submit %d expected 201, got %d", i+1, resp.Code)
		}
	}
	if resp := doRequest(r, http.MethodPost, "user-1"); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("submit 3 expected 429, got %d", resp.Code)
	}
	for i := 0; i < 5; i++ {
		if resp := doRequest(r, http.MethodGet, "user-1"); resp.Code != http.StatusOK {
			t.Fatalf("history %d expected 200, got %d", i+1, resp.Code)
		}
	}
	if resp := doRequest(r, http.MethodPost, "user-2"); resp.Code != http.StatusCreated {
		t.Fatalf("other user expected 201, got %d", resp.Code)
	}

	now = now.Add(time.Second)
	if resp := doRequest(r, http.MethodPost, "user-1"); resp.Code != http.StatusCreated {
		t.Fatalf("after refill expected 201, got %d", resp.Code)
	}
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedRouter(&now, map[string]RateLimitRule{
		RateLimitGroupSubmit: PerMinute(1),
	})

	if resp := doRequest(r, http.MethodPost, "user-1"); resp.Code != http.StatusCreated {
		t.Fatalf("expected first request 201, got %d", resp.Code)
	}
	resp := doRequest(r, http.MethodPost, "user-1")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if got := resp.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("expected Retry-After 60, got %q", got)
	}

	var payload struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "rate_limited" {
		t.Fatalf("expected code=rate_limited, got %q", payload.Error.Code)
	}
	if payload.Error.Details["group"] != RateLimitGroupSubmit {
		t.Fatalf("expected group in details, got %v", payload.Error.Details)
	}
	if _, ok := payload.Error.Details["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in details")
	}
}

func TestPerMinuteDisabledForZero(t *testing.T) {
	limiter := NewRateLimiter(nil)
	for i := 0; i < 100; i++ {
		if ok, _ := limiter.Allow("k", PerMinute(0)); !ok {
			t.Fatalf("expected unlimited rule to allow")
		}
	}
}
