package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/app/models/dto"
	"github.com/squadran/buildforge/internal/pkg/apperrors"
	"github.com/squadran/buildforge/internal/pkg/auth"
)

// Context keys set by AuthRequired.
const (
	ContextUID           = "uid"
	ContextRole          = "role"
	ContextInstitutionID = "institutionId"
)

// AuthMiddleware validates session tokens and enforces role gates.
type AuthMiddleware struct {
	tokens *auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(tokens *auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// AuthRequired validates the bearer token and stores its claims on the
// request context.
func (m *AuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHORIZED", "authentication required"))
			return
		}

		claims, err := m.tokens.Validate(tokenString)
		if err != nil {
			code := "INVALID_TOKEN"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				code = "EXPIRED_TOKEN"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(code, "authentication failed"))
			return
		}

		c.Set(ContextUID, claims.UID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextInstitutionID, claims.InstitutionID)
		c.Next()
	}
}

// RoleRequired allows the request through only for the given roles.
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := RoleFromContext(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse("PERMISSION_DENIED", "insufficient role"))
	}
}

// UIDFromContext returns the session user id set by AuthRequired.
func UIDFromContext(c *gin.Context) string {
	uid, _ := c.Get(ContextUID)
	s, _ := uid.(string)
	return s
}

// RoleFromContext returns the session role set by AuthRequired.
func RoleFromContext(c *gin.Context) models.Role {
	role, _ := c.Get(ContextRole)
	r, _ := role.(models.Role)
	return r
}

// InstitutionFromContext returns the session institution id set by
// AuthRequired.
func InstitutionFromContext(c *gin.Context) string {
	id, _ := c.Get(ContextInstitutionID)
	s, _ := id.(string)
	return s
}
