package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/batch-intake-api/internal/models"
	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
	"github.com/noah-isme/batch-intake-api/pkg/response"
)

// ContextAdminKey is the gin context key storing verified admin claims.
const ContextAdminKey = "currentAdmin"

type tokenValidator interface {
	ValidateToken(token string) (*models.AdminClaims, error)
}

// JWT protects routes by requiring a valid admin bearer token.
func JWT(validator tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, claims)
		c.Next()
	}
}

// AdminFromContext returns the claims stored by JWT, or nil when the route is unauthenticated.
func AdminFromContext(c *gin.Context) *models.AdminClaims {
	value, exists := c.Get(ContextAdminKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.AdminClaims)
	return claims
}
