package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/app/models/dto"
	"github.com/squadran/buildforge/internal/app/services"
	"github.com/squadran/buildforge/internal/middleware"
)

// UserController handles profile management and the role-scoped user
// listings.
type UserController struct {
	identity services.IdentityService
}

// NewUserController creates a new UserController.
func NewUserController(identity services.IdentityService) *UserController {
	return &UserController{identity: identity}
}

// GetUser returns a profile by uid.
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.identity.GetUser(ctx, ctx.Param("uid"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// UpdateProfile merges a partial profile update. Users may edit
// themselves; leads and the super admin may edit anyone.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	uid := ctx.Param("uid")
	role := middleware.RoleFromContext(ctx)
	if uid != middleware.UIDFromContext(ctx) &&
		role != models.RoleLead && role != models.RoleSuperAdmin {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse("PERMISSION_DENIED", "cannot edit another user's profile"))
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	user, err := c.identity.UpdateProfile(ctx, uid, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// ToggleBlock flips a user's blocked flag.
func (c *UserController) ToggleBlock(ctx *gin.Context) {
	user, err := c.identity.ToggleBlock(ctx, ctx.Param("uid"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// DeleteUser removes a profile.
func (c *UserController) DeleteUser(ctx *gin.Context) {
	if err := c.identity.DeleteUser(ctx, ctx.Param("uid")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("user deleted"))
}

// ListDevelopers returns the cohort's unblocked developers.
func (c *UserController) ListDevelopers(ctx *gin.Context) {
	users, err := c.identity.ListDevelopers(ctx, c.institutionScope(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

// ListManageableUsers returns the users a lead can manage.
func (c *UserController) ListManageableUsers(ctx *gin.Context) {
	users, err := c.identity.ListManageableUsers(ctx, c.institutionScope(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

// ListInstitutionUsers returns every cohort member for the platform
// operator.
func (c *UserController) ListInstitutionUsers(ctx *gin.Context) {
	users, err := c.identity.ListInstitutionUsers(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

// ListMessageableUsers returns the networking view for the session user.
func (c *UserController) ListMessageableUsers(ctx *gin.Context) {
	users, err := c.identity.ListMessageableUsers(ctx,
		middleware.UIDFromContext(ctx), c.institutionScope(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

// ListConnections returns the session user's messaging graph.
func (c *UserController) ListConnections(ctx *gin.Context) {
	users, err := c.identity.ListConnections(ctx,
		middleware.UIDFromContext(ctx), c.institutionScope(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

// institutionScope resolves the cohort a listing applies to: an explicit
// query parameter (the super admin browsing other cohorts) or the
// session's own institution.
func (c *UserController) institutionScope(ctx *gin.Context) string {
	if id := ctx.Query("institutionId"); id != "" {
		return id
	}
	return middleware.InstitutionFromContext(ctx)
}
