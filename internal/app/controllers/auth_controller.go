package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/app/models/dto"
	"github.com/squadran/buildforge/internal/app/services"
	"github.com/squadran/buildforge/internal/pkg/auth"
)

// AuthController handles the login and registration endpoints.
type AuthController struct {
	identity services.IdentityService
	tokens   *auth.TokenService
}

// NewAuthController creates a new AuthController.
func NewAuthController(identity services.IdentityService, tokens *auth.TokenService) *AuthController {
	return &AuthController{identity: identity, tokens: tokens}
}

func (c *AuthController) respondWithToken(ctx *gin.Context, user *models.UserProfile) {
	token, expiresIn, err := c.tokens.Generate(user)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AuthResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      user,
	}))
}

// SuperAdminLogin authenticates the platform operator by shared secret.
func (c *AuthController) SuperAdminLogin(ctx *gin.Context) {
	var req dto.SuperAdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	admin, err := c.identity.AuthenticateSuperAdmin(ctx, req.Secret)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.respondWithToken(ctx, admin)
}

// LeadLogin authenticates a cohort lead by institution access key.
func (c *AuthController) LeadLogin(ctx *gin.Context) {
	var req dto.LeadLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	lead, err := c.identity.LoginLead(ctx, req.Email, req.AccessKey, req.InstitutionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.respondWithToken(ctx, lead)
}

// Login authenticates a founder or developer by email.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	user, err := c.identity.LoginByEmail(ctx, req.Email, req.InstitutionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.respondWithToken(ctx, user)
}

// RegisterFounder creates a founder profile and logs it in.
func (c *AuthController) RegisterFounder(ctx *gin.Context) {
	var req dto.RegisterFounderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	user, err := c.identity.RegisterFounder(ctx, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.respondWithToken(ctx, user)
}

// RegisterDeveloper creates a developer profile and logs it in.
func (c *AuthController) RegisterDeveloper(ctx *gin.Context) {
	var req dto.RegisterDeveloperRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	user, err := c.identity.RegisterDeveloper(ctx, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.respondWithToken(ctx, user)
}
