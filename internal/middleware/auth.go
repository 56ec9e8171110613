package middleware

import (
	"strings"

	"github.com/baxirbajja/CMCEspace-api/internal/auth"
	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/baxirbajja/CMCEspace-api/internal/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys populated by Protect for downstream handlers.
const (
	ContextUserID  = "user_id"
	ContextRole    = "user_role"
	ContextTokenID = "token_id"
	ContextExpires = "token_expires"
)

// Protect rejects requests without a valid, unrevoked bearer token.
func Protect(manager *auth.JWTManager, store *auth.TokenStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, log, domain.NewUnauthorizedError("Non autorisé à accéder à cette route"))
			c.Abort()
			return
		}

		claims, err := manager.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Error(c, log, err)
			c.Abort()
			return
		}

		blocked, err := store.IsBlocked(c.Request.Context(), claims.ID)
		if err != nil {
			response.Error(c, log, err)
			c.Abort()
			return
		}
		if blocked {
			response.Error(c, log, domain.NewUnauthorizedError("Non autorisé à accéder à cette route"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextExpires, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// RequireAdmin rejects authenticated requests whose role is not admin.
// It must run after Protect.
func RequireAdmin(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != "admin" {
			response.Error(c, log, domain.NewForbiddenError("Le rôle utilisateur n'est pas autorisé à accéder à cette route"))
			c.Abort()
			return
		}
		c.Next()
	}
}
