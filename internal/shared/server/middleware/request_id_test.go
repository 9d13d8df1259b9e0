package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/probe", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	cases := []struct {
		name     string
		header   string
		generate bool
	}{
		{name: "reuses caller id", header: "abc-123"},
		{name: "generates when missing", generate: true},
		{name: "replaces spaces", header: "has space", generate: true},
		{name: "replaces oversized", header: strings.Repeat("x", 200), generate: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tc.header != "" {
				req.Header.Set("X-Request-Id", tc.header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			got := resp.Header().Get("X-Request-Id")
			if got != resp.Body.String() {
				t.Fatalf("header %q and context %q differ", got, resp.Body.String())
			}
			if tc.generate {
				if _, err := uuid.Parse(got); err != nil {
					t.Fatalf("expected generated uuid, got %q", got)
				}
			} else if got != tc.header {
				t.Fatalf("expected %q, got %q", tc.header, got)
			}
		})
	}
}
