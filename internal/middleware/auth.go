package middleware

import (
	"strings"

	"github.com/dimitrije/party-api/internal/models"
	"github.com/dimitrije/party-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	PlayerIDKey = "player_id"
	RoleKey     = "role"
)

func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(PlayerIDKey, claims.PlayerID)
		c.Set(RoleKey, claims.Role)

		c.Next()
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() drift.HandlerFunc {
	return func(c *drift.Context) {
		if GetRole(c) != models.RoleAdmin {
			c.Forbidden("admin access required")
			return
		}
		c.Next()
	}
}

func GetPlayerID(c *drift.Context) (int64, bool) {
	if id, ok := c.Get(PlayerIDKey); ok {
		if pid, ok := id.(int64); ok {
			return pid, true
		}
	}
	return 0, false
}

func GetRole(c *drift.Context) string {
	if role, ok := c.Get(RoleKey); ok {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}
