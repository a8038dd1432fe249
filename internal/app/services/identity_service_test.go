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

func TestAuthenticateSuperAdmin(t *testing.T) {
	ctx := context.Background()
	svcs, repos := newTestServices(t)

	_, err := svcs.Identity.AuthenticateSuperAdmin(ctx, "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAccessKey)

	admin, err := svcs.Identity.AuthenticateSuperAdmin(ctx, testSuperAdminSecret)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, admin.Role)
	assert.Equal(t, models.PlatformInstitutionID, admin.InstitutionID)

	// Repeated logins resolve to the same profile.
	again, err := svcs.Identity.AuthenticateSuperAdmin(ctx, testSuperAdminSecret)
	require.NoError(t, err)
	assert.Equal(t, admin.UID, again.UID)

	users, err := repos.Users.All(ctx)
	require.NoError(t, err)
	count := 0
	for _, u := range users {
		if u.Role == models.RoleSuperAdmin {
			count++
		}
	}
	assert.Equal(t, 1, count, "exactly one super admin may exist")
}

func TestRegisterFounderAndLogin(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	founder, err := svcs.Identity.RegisterFounder(ctx, &dto.RegisterFounderRequest{
		InstitutionID: "cohort_alpha",
		Name:          "Mira",
		Email:         "mira@startup.io",
		StartupName:   "GreenCart",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleFounder, founder.Role)
	assert.Equal(t, "cohort_alpha", founder.InstitutionID)
	assert.NotEmpty(t, founder.Avatar)

	logged, err := svcs.Identity.LoginByEmail(ctx, "mira@startup.io", "cohort_alpha")
	require.NoError(t, err)
	assert.Equal(t, founder.UID, logged.UID)
}

func TestRegisterRejectsDuplicateEmailInCohort(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	first, err := svcs.Identity.RegisterDeveloper(ctx, &dto.RegisterDeveloperRequest{
		InstitutionID: "cohort_alpha",
		Name:          "Dev One",
		Email:         "dev@startup.io",
	})
	require.NoError(t, err)

	_, err = svcs.Identity.RegisterDeveloper(ctx, &dto.RegisterDeveloperRequest{
		InstitutionID: "cohort_alpha",
		Name:          "Dev Two",
		Email:         "dev@startup.io",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

	// The same email is fine in another cohort.
	_, err = svcs.Identity.RegisterDeveloper(ctx, &dto.RegisterDeveloperRequest{
		InstitutionID: "cohort_beta",
		Name:          "Dev Two",
		Email:         "dev@startup.io",
	})
	require.NoError(t, err)

	// A blocked holder releases the address.
	_, err = svcs.Identity.ToggleBlock(ctx, first.UID)
	require.NoError(t, err)
	_, err = svcs.Identity.RegisterDeveloper(ctx, &dto.RegisterDeveloperRequest{
		InstitutionID: "cohort_alpha",
		Name:          "Dev Three",
		Email:         "dev@startup.io",
	})
	require.NoError(t, err)
}

func TestLoginByEmailBlockedAndUnknown(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	_, err := svcs.Identity.LoginByEmail(ctx, "nobody@startup.io", "cohort_alpha")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	founder, err := svcs.Identity.RegisterFounder(ctx, &dto.RegisterFounderRequest{
		InstitutionID: "cohort_alpha",
		Name:          "Mira",
		Email:         "mira@startup.io",
	})
	require.NoError(t, err)

	_, err = svcs.Identity.ToggleBlock(ctx, founder.UID)
	require.NoError(t, err)

	_, err = svcs.Identity.LoginByEmail(ctx, "mira@startup.io", "cohort_alpha")
	assert.ErrorIs(t, err, apperrors.ErrAccountBlocked)
}

func TestLoginLead(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	_, err := svcs.Identity.LoginLead(ctx, "lead@alpha.io", "nope", "cohort_alpha")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAccessKey)

	// The seeded lead resolves by email.
	lead, err := svcs.Identity.LoginLead(ctx, "lead@alpha.io", "admin", "cohort_alpha")
	require.NoError(t, err)
	assert.Equal(t, "admin_alpha", lead.UID)

	// An unknown email auto-provisions a fresh lead, once.
	fresh, err := svcs.Identity.LoginLead(ctx, "newlead@alpha.io", "admin", "cohort_alpha")
	require.NoError(t, err)
	assert.Equal(t, models.RoleLead, fresh.Role)
	assert.Equal(t, "newlead", fresh.Name)

	again, err := svcs.Identity.LoginLead(ctx, "newlead@alpha.io", "admin", "cohort_alpha")
	require.NoError(t, err)
	assert.Equal(t, fresh.UID, again.UID)
}

func TestLoginLeadUsesInstitutionAccessKey(t *testing.T) {
	ctx := context.Background()
	svcs, repos := newTestServices(t)

	_, err := repos.Institutions.Update(ctx, func(institutions []models.Institution) ([]models.Institution, error) {
		for i := range institutions {
			if institutions[i].ID == "cohort_beta" {
				institutions[i].AccessKey = "beta-key"
			}
		}
		return institutions, nil
	})
	require.NoError(t, err)

	_, err = svcs.Identity.LoginLead(ctx, "lead@beta.io", "admin", "cohort_beta")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAccessKey)

	_, err = svcs.Identity.LoginLead(ctx, "lead@beta.io", "beta-key", "cohort_beta")
	require.NoError(t, err)
}

func TestUpdateProfileMergesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	bio := "Now building in public."
	updated, err := svcs.Identity.UpdateProfile(ctx, "founder_01", &dto.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, "Rohan (Founder)", updated.Name, "absent fields must be untouched")
	assert.Equal(t, models.RoleFounder, updated.Role)

	_, err = svcs.Identity.UpdateProfile(ctx, "ghost", &dto.UpdateProfileRequest{Bio: &bio})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	require.NoError(t, svcs.Identity.DeleteUser(ctx, "founder_01"))

	_, err := svcs.Identity.GetUser(ctx, "founder_01")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting an absent uid stays quiet.
	require.NoError(t, svcs.Identity.DeleteUser(ctx, "founder_01"))
}

func TestListDevelopersExcludesBlocked(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	devs, err := svcs.Identity.ListDevelopers(ctx, "cohort_beta")
	require.NoError(t, err)
	require.Len(t, devs, 1)
	assert.Equal(t, "dev_beta_1", devs[0].UID)

	_, err = svcs.Identity.ToggleBlock(ctx, "dev_beta_1")
	require.NoError(t, err)

	devs, err = svcs.Identity.ListDevelopers(ctx, "cohort_beta")
	require.NoError(t, err)
	assert.Empty(t, devs)
}

func TestListManageableUsersExcludesLeads(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	users, err := svcs.Identity.ListManageableUsers(ctx, "cohort_alpha")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "founder_01", users[0].UID)

	all, err := svcs.Identity.ListInstitutionUsers(ctx, "cohort_alpha")
	require.NoError(t, err)
	assert.Len(t, all, 2, "the institution listing includes the lead")
}

func TestListConnectionsSuperAdminSeesEveryoneIncludingBlocked(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	admin, err := svcs.Identity.AuthenticateSuperAdmin(ctx, testSuperAdminSecret)
	require.NoError(t, err)

	_, err = svcs.Identity.ToggleBlock(ctx, "founder_01")
	require.NoError(t, err)

	connections, err := svcs.Identity.ListConnections(ctx, admin.UID, models.PlatformInstitutionID)
	require.NoError(t, err)

	uids := make(map[string]bool)
	for _, u := range connections {
		uids[u.UID] = true
	}
	assert.False(t, uids[admin.UID], "never includes self")
	assert.True(t, uids["founder_01"], "blocked users stay visible to the platform operator")
	assert.True(t, uids["admin_alpha"])
	assert.True(t, uids["dev_beta_1"])
}

func TestListConnectionsLeadSeesUnblockedCohort(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	_, err := svcs.Identity.ToggleBlock(ctx, "founder_01")
	require.NoError(t, err)

	connections, err := svcs.Identity.ListConnections(ctx, "admin_alpha", "cohort_alpha")
	require.NoError(t, err)
	assert.Empty(t, connections, "the only other cohort member is blocked")
}

func TestListConnectionsFollowProjectTeams(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	founder, err := svcs.Identity.RegisterFounder(ctx, &dto.RegisterFounderRequest{
		InstitutionID: "cohort_alpha",
		Name:          "Mira",
		Email:         "mira@startup.io",
	})
	require.NoError(t, err)
	developer, err := svcs.Identity.RegisterDeveloper(ctx, &dto.RegisterDeveloperRequest{
		InstitutionID: "cohort_alpha",
		Name:          "Dev A",
		Email:         "deva@startup.io",
	})
	require.NoError(t, err)

	post, err := svcs.Workflow.CreatePost(ctx, &dto.CreatePostRequest{
		InstitutionID: "cohort_alpha",
		AuthorID:      founder.UID,
		AuthorName:    founder.Name,
		AuthorRole:    models.RoleFounder,
		Type:          models.PostTypeIdeaSubmission,
		Title:         "GreenCart",
		Content:       "Compost pickup routing.",
	})
	require.NoError(t, err)

	// Before any team exists, a founder only reaches the cohort leads.
	connections, err := svcs.Identity.ListConnections(ctx, founder.UID, "cohort_alpha")
	require.NoError(t, err)
	require.Len(t, connections, 1)
	assert.Equal(t, "admin_alpha", connections[0].UID)

	_, err = svcs.Workflow.VerifyPost(ctx, post.ID)
	require.NoError(t, err)
	require.NoError(t, svcs.Workflow.AssignDeveloper(ctx, post.ID, developer.UID))

	connections, err = svcs.Identity.ListConnections(ctx, founder.UID, "cohort_alpha")
	require.NoError(t, err)
	uids := []string{}
	for _, u := range connections {
		uids = append(uids, u.UID)
	}
	assert.ElementsMatch(t, []string{"admin_alpha", developer.UID}, uids)

	// And the graph is symmetric for the developer.
	connections, err = svcs.Identity.ListConnections(ctx, developer.UID, "cohort_alpha")
	require.NoError(t, err)
	uids = uids[:0]
	for _, u := range connections {
		uids = append(uids, u.UID)
	}
	assert.ElementsMatch(t, []string{"admin_alpha", founder.UID}, uids)
}
