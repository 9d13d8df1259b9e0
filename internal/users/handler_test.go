package users_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"survey-backend/internal/bootstrap"
	"survey-backend/internal/shared/config"
	"survey-backend/internal/users"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(config.Config{Env: "dev", StoreDriver: config.DriverMemory, DefaultAdminUsername: "root"})
	if err != nil {
		t.Fatalf("bootstrap.Build: %v", err)
	}
	t.Cleanup(app.Close)
	return app.Router
}

func register(t *testing.T, router *gin.Engine, username string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterAndMe(t *testing.T) {
	router := setupRouter(t)

	resp := register(t, router, "budi")
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created users.User
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-User-Id", created.ID)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var me users.User
	if err := json.Unmarshal(resp.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if me.Username != "budi" || me.Role != users.RoleUser {
		t.Fatalf("unexpected me: %+v", me)
	}
}

func TestRegisterConflictsAndValidation(t *testing.T) {
	router := setupRouter(t)

	if resp := register(t, router, "root"); resp.Code != http.StatusConflict {
		t.Fatalf("expected seeded admin username to conflict, got %d", resp.Code)
	}
	if resp := register(t, router, " "); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank username, got %d", resp.Code)
	}
}

func TestMeUnknownUser(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-User-Id", "ghost")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
