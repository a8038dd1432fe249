package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/squadran/buildforge/internal/app/models/dto"
	"github.com/squadran/buildforge/internal/app/services"
)

// InstitutionController handles cohort lifecycle and the onboarding
// workflow.
type InstitutionController struct {
	tenancy services.TenancyService
}

// NewInstitutionController creates a new InstitutionController.
func NewInstitutionController(tenancy services.TenancyService) *InstitutionController {
	return &InstitutionController{tenancy: tenancy}
}

// ListInstitutions returns every cohort.
func (c *InstitutionController) ListInstitutions(ctx *gin.Context) {
	institutions, err := c.tenancy.ListInstitutions(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(institutions))
}

// GetInstitutionByCode resolves a cohort by join code.
func (c *InstitutionController) GetInstitutionByCode(ctx *gin.Context) {
	institution, err := c.tenancy.GetInstitutionByCode(ctx, ctx.Param("code"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(institution))
}

// CreateInstitution opens a new cohort with its default lead and welcome
// post.
func (c *InstitutionController) CreateInstitution(ctx *gin.Context) {
	var req dto.CreateInstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	institution, err := c.tenancy.CreateInstitution(ctx, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(institution))
}

// DeleteInstitution removes a cohort and cascades to its users and posts.
func (c *InstitutionController) DeleteInstitution(ctx *gin.Context) {
	if err := c.tenancy.DeleteInstitution(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("institution deleted"))
}

// SubmitOnboardingRequest records a new cohort application.
func (c *InstitutionController) SubmitOnboardingRequest(ctx *gin.Context) {
	var req dto.SubmitOnboardingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	request, err := c.tenancy.SubmitOnboardingRequest(ctx, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request))
}

// ListPendingRequests returns the open onboarding queue.
func (c *InstitutionController) ListPendingRequests(ctx *gin.Context) {
	requests, err := c.tenancy.ListPendingRequests(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// ApproveRequest approves a pending onboarding request and opens its
// cohort.
func (c *InstitutionController) ApproveRequest(ctx *gin.Context) {
	institution, err := c.tenancy.ApproveRequest(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if institution == nil {
		ctx.JSON(http.StatusOK, dto.NewMessageResponse("request already processed"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(institution))
}

// RejectRequest rejects a pending onboarding request.
func (c *InstitutionController) RejectRequest(ctx *gin.Context) {
	if err := c.tenancy.RejectRequest(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("request rejected"))
}
