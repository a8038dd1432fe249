package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/app/models/dto"
	"github.com/squadran/buildforge/internal/pkg/apperrors"
)

func TestCreateInstitutionProvisionsLeadAndWelcomePost(t *testing.T) {
	ctx := context.Background()
	svcs, repos := newTestServices(t)

	institution, err := svcs.Tenancy.CreateInstitution(ctx, &dto.CreateInstitutionRequest{
		Name: "Gamma School",
		Code: "GAMMA",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, institution.ID)
	assert.Equal(t, "admin", institution.AccessKey)
	assert.NotEmpty(t, institution.Logo, "logo falls back to the default")
	assert.NotEmpty(t, institution.ThemeColor)

	lead, err := svcs.Identity.GetUser(ctx, "admin_"+institution.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleLead, lead.Role)
	assert.Equal(t, institution.ID, lead.InstitutionID)
	assert.Equal(t, "lead@gamma.io", lead.Email)

	posts, err := repos.Posts.All(ctx)
	require.NoError(t, err)
	var welcome *models.Post
	for i := range posts {
		if posts[i].InstitutionID == institution.ID {
			require.Nil(t, welcome, "exactly one welcome post")
			welcome = &posts[i]
		}
	}
	require.NotNil(t, welcome)
	assert.Equal(t, models.PostStatusVerified, welcome.Status)
	assert.Equal(t, models.PostTypeSprintUpdate, welcome.Type)
	assert.Equal(t, lead.UID, welcome.AuthorID)
}

func TestDeleteInstitutionCascades(t *testing.T) {
	ctx := context.Background()
	svcs, repos := newTestServices(t)

	require.NoError(t, svcs.Tenancy.DeleteInstitution(ctx, "cohort_alpha"))

	institutions, err := svcs.Tenancy.ListInstitutions(ctx)
	require.NoError(t, err)
	for _, inst := range institutions {
		assert.NotEqual(t, "cohort_alpha", inst.ID)
	}

	users, err := repos.Users.All(ctx)
	require.NoError(t, err)
	for _, u := range users {
		assert.NotEqual(t, "cohort_alpha", u.InstitutionID)
	}

	posts, err := repos.Posts.All(ctx)
	require.NoError(t, err)
	for _, p := range posts {
		assert.NotEqual(t, "cohort_alpha", p.InstitutionID)
	}

	// The sibling cohort is untouched.
	beta, err := svcs.Tenancy.GetInstitutionByCode(ctx, "BETA")
	require.NoError(t, err)
	assert.Equal(t, "cohort_beta", beta.ID)
}

func TestGetInstitutionByCodeIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	institution, err := svcs.Tenancy.GetInstitutionByCode(ctx, "  alpha ")
	require.NoError(t, err)
	assert.Equal(t, "cohort_alpha", institution.ID)

	_, err = svcs.Tenancy.GetInstitutionByCode(ctx, "OMEGA")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOnboardingApprovalFlow(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	request, err := svcs.Tenancy.SubmitOnboardingRequest(ctx, &dto.SubmitOnboardingRequest{
		InstituteName: "Delta Institute",
		Email:         "dean@delta.edu",
		ContactName:   "Dean Moss",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)

	pending, err := svcs.Tenancy.ListPendingRequests(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	institution, err := svcs.Tenancy.ApproveRequest(ctx, request.ID)
	require.NoError(t, err)
	require.NotNil(t, institution)
	assert.Equal(t, "Delta Institute", institution.Name)
	assert.Equal(t, "DELT", institution.Code)
	assert.Contains(t, themePalette, institution.ThemeColor)

	pending, err = svcs.Tenancy.ListPendingRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Approving again is a no-op: no second institution.
	again, err := svcs.Tenancy.ApproveRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Nil(t, again)

	institutions, err := svcs.Tenancy.ListInstitutions(ctx)
	require.NoError(t, err)
	count := 0
	for _, inst := range institutions {
		if inst.Name == "Delta Institute" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRejectRequest(t *testing.T) {
	ctx := context.Background()
	svcs, repos := newTestServices(t)

	request, err := svcs.Tenancy.SubmitOnboardingRequest(ctx, &dto.SubmitOnboardingRequest{
		InstituteName: "Delta Institute",
		Email:         "dean@delta.edu",
		ContactName:   "Dean Moss",
	})
	require.NoError(t, err)

	require.NoError(t, svcs.Tenancy.RejectRequest(ctx, request.ID))

	stored, err := repos.Requests.FindByID(ctx, request.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.RequestStatusRejected, stored.Status)

	// Rejecting a terminal request does not flip it back.
	institution, err := svcs.Tenancy.ApproveRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Nil(t, institution)

	err = svcs.Tenancy.RejectRequest(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
