package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skillbridge-backend/internal/shared/auth"
	"skillbridge-backend/internal/shared/server/respond"
)

const (
	userRollKey = "userRoll"
	userRoleKey = "userRole"
	userNameKey = "userName"
)

// RoleAdmin marks callers permitted to query any reference profile.
const RoleAdmin = "admin"

// Auth validates bearer tokens and stores the caller identity in context.
// Token issuance is handled by the identity collaborator; only verification
// happens here.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userRollKey, claims.RollNumber())
		c.Set(userRoleKey, claims.Role)
		if claims.Name != "" {
			c.Set(userNameKey, claims.Name)
		}
		c.Next()
	}
}

// RollFromContext fetches the caller roll number set by the auth middleware.
func RollFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userRollKey)
	if roll, ok := val.(string); ok {
		return roll
	}
	return ""
}

// RoleFromContext fetches the caller role set by the auth middleware.
func RoleFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userRoleKey)
	if role, ok := val.(string); ok {
		return role
	}
	return ""
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	return RoleFromContext(c) == RoleAdmin
}

// UserNameFromContext fetches the caller display name, if the token carried one.
func UserNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userNameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}
