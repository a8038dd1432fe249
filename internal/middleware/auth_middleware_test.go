package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/pkg/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, *auth.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenService(auth.TokenConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "buildforge.test",
	})
	m := NewAuthMiddleware(tokens)

	router := gin.New()
	router.GET("/me", m.AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uid":           UIDFromContext(c),
			"role":          RoleFromContext(c),
			"institutionId": InstitutionFromContext(c),
		})
	})
	router.GET("/admin", m.AuthRequired(), m.RoleRequired(models.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, tokens
}

func bearerFor(t *testing.T, tokens *auth.TokenService, user *models.UserProfile) string {
	t.Helper()
	token, _, err := tokens.Generate(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthRequiredRejectsMissingAndBadTokens(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredPopulatesClaims(t *testing.T) {
	router, tokens := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, &models.UserProfile{
		UID:           "founder_01",
		InstitutionID: "cohort_alpha",
		Role:          models.RoleFounder,
	}))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":"founder_01"`)
	assert.Contains(t, w.Body.String(), `"institutionId":"cohort_alpha"`)
}

func TestRoleRequired(t *testing.T) {
	router, tokens := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, &models.UserProfile{
		UID:  "founder_01",
		Role: models.RoleFounder,
	}))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, &models.UserProfile{
		UID:  "super_admin",
		Role: models.RoleSuperAdmin,
	}))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
