package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/app/models/dto"
	"github.com/squadran/buildforge/internal/app/services"
	"github.com/squadran/buildforge/internal/middleware"
	"github.com/squadran/buildforge/internal/pkg/apperrors"
)

// PostController handles the project-idea feed and its moderation
// workflow.
type PostController struct {
	workflow services.WorkflowService
	identity services.IdentityService
}

// NewPostController creates a new PostController.
func NewPostController(workflow services.WorkflowService, identity services.IdentityService) *PostController {
	return &PostController{workflow: workflow, identity: identity}
}

// ListPosts returns the feed visible to the session user, optionally
// filtered by type.
func (c *PostController) ListPosts(ctx *gin.Context) {
	uid := middleware.UIDFromContext(ctx)
	role := middleware.RoleFromContext(ctx)

	institutionID := ctx.Query("institutionId")
	if institutionID == "" {
		institutionID = middleware.InstitutionFromContext(ctx)
	}

	posts, err := c.workflow.ListPosts(ctx, institutionID, models.PostType(ctx.Query("type")), role, uid)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// ListPendingPosts returns the moderation queue for an institution.
func (c *PostController) ListPendingPosts(ctx *gin.Context) {
	institutionID := ctx.Query("institutionId")
	if institutionID == "" {
		institutionID = middleware.InstitutionFromContext(ctx)
	}

	posts, err := c.workflow.ListPendingPosts(ctx, institutionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// ListUserPosts returns every post authored by a user.
func (c *PostController) ListUserPosts(ctx *gin.Context) {
	posts, err := c.workflow.ListUserPosts(ctx, ctx.Param("uid"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// CreatePost submits a new post on behalf of the session user.
func (c *PostController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	// Authorship comes from the session, never from the payload.
	uid := middleware.UIDFromContext(ctx)
	author, err := c.identity.GetUser(ctx, uid)
	if err != nil {
		respondError(ctx, err)
		return
	}
	req.AuthorID = author.UID
	req.AuthorName = author.Name
	req.AuthorRole = author.Role
	if req.InstitutionID == "" {
		req.InstitutionID = author.InstitutionID
	}

	post, err := c.workflow.CreatePost(ctx, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// VerifyPost approves a pending post.
func (c *PostController) VerifyPost(ctx *gin.Context) {
	post, err := c.workflow.VerifyPost(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if post == nil {
		respondError(ctx, apperrors.NewNotFoundError("post not found"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeletePost removes a post.
func (c *PostController) DeletePost(ctx *gin.Context) {
	if err := c.workflow.DeletePost(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("post deleted"))
}

// ToggleLike bumps a post's like counter.
func (c *PostController) ToggleLike(ctx *gin.Context) {
	if err := c.workflow.ToggleLike(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("like recorded"))
}

// AddComment appends a comment by the session user.
func (c *PostController) AddComment(ctx *gin.Context) {
	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	uid := middleware.UIDFromContext(ctx)
	user, err := c.identity.GetUser(ctx, uid)
	if err != nil {
		respondError(ctx, err)
		return
	}

	comment, err := c.workflow.AddComment(ctx, ctx.Param("id"), user.UID, user.Name, req.Text)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// ApplyToProject records the session user's application to an idea.
func (c *PostController) ApplyToProject(ctx *gin.Context) {
	applied, err := c.workflow.ApplyToProject(ctx, ctx.Param("id"), middleware.UIDFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !applied {
		ctx.JSON(http.StatusOK, dto.NewMessageResponse("already applied"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("application recorded"))
}

// AssignDeveloper moves an applicant onto an idea's team.
func (c *PostController) AssignDeveloper(ctx *gin.Context) {
	var req dto.AssignDeveloperRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	if err := c.workflow.AssignDeveloper(ctx, ctx.Param("id"), req.UserID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("developer assigned"))
}
