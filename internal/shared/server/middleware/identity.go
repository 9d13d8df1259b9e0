package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"survey-backend/internal/shared/server/respond"
	"survey-backend/internal/shared/telemetry"
)

// UserIDHeader carries the caller's user id.
const UserIDHeader = "X-User-Id"

const (
	userIDKey   = "userId"
	userRoleKey = "userRole"
)

// RoleLookup resolves the stored role of a user id.
type RoleLookup func(ctx context.Context, userID string) (string, error)

// Identity stores the X-User-Id header, if any, in the request context.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := strings.TrimSpace(c.GetHeader(UserIDHeader)); userID != "" {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

// RequireUser rejects requests without an identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserIDFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		c.Next()
	}
}

// RequireRole only lets through callers whose stored role equals role.
func RequireRole(lookup RoleLookup, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserIDFromContext(c)
		if userID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		got, err := lookup(c.Request.Context(), userID)
		if err != nil {
			telemetry.Warn("auth.role_lookup_failed", map[string]any{
				"user_id": userID,
				"error":   err,
			})
			respond.Error(c, http.StatusForbidden, "forbidden", "unknown user", nil)
			return
		}
		if got != role {
			respond.Error(c, http.StatusForbidden, "forbidden", "insufficient role", nil)
			return
		}
		c.Set(userRoleKey, got)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserRoleFromContext returns the role confirmed by RequireRole.
func UserRoleFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userRoleKey)
}
