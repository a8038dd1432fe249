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

func submitIdea(t *testing.T, svcs *Services, institutionID, authorID, title string) *models.Post {
	t.Helper()
	post, err := svcs.Workflow.CreatePost(context.Background(), &dto.CreatePostRequest{
		InstitutionID: institutionID,
		AuthorID:      authorID,
		AuthorName:    "Author",
		AuthorRole:    models.RoleFounder,
		Type:          models.PostTypeIdeaSubmission,
		Title:         title,
		Content:       "An idea worth forging.",
	})
	require.NoError(t, err)
	return post
}

func TestCreatePostStartsPending(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	post := submitIdea(t, svcs, "cohort_alpha", "founder_01", "GreenCart")
	assert.Equal(t, models.PostStatusPending, post.Status)
	assert.Nil(t, post.MVP, "no build plan before verification")
	assert.NotZero(t, post.Timestamp)

	pending, err := svcs.Workflow.ListPendingPosts(ctx, "cohort_alpha")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, post.ID, pending[0].ID)
}

func TestVerifyPostSynthesizesMVPForIdeas(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	post := submitIdea(t, svcs, "cohort_alpha", "founder_01", "GreenCart")

	verified, err := svcs.Workflow.VerifyPost(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, verified)
	assert.Equal(t, models.PostStatusVerified, verified.Status)
	require.NotNil(t, verified.MVP)
	assert.Contains(t, verified.MVP.Description, `"GreenCart"`)
	assert.Equal(t, models.MVPStatusReady, verified.MVP.Status)

	// Re-verifying is harmless: the plan is derived from the title alone.
	again, err := svcs.Workflow.VerifyPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, verified.MVP.Description, again.MVP.Description)

	// Absent posts verify to nothing.
	missing, err := svcs.Workflow.VerifyPost(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestVerifyPostLeavesNonIdeasWithoutMVP(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	post, err := svcs.Workflow.CreatePost(ctx, &dto.CreatePostRequest{
		InstitutionID: "cohort_alpha",
		AuthorID:      "admin_alpha",
		AuthorName:    "Alpha Lead",
		AuthorRole:    models.RoleLead,
		Type:          models.PostTypeSprintUpdate,
		Content:       "Week 3 status.",
	})
	require.NoError(t, err)

	verified, err := svcs.Workflow.VerifyPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusVerified, verified.Status)
	assert.Nil(t, verified.MVP)
}

func TestToggleLikeCounts(t *testing.T) {
	ctx := context.Background()
	svcs, repos := newTestServices(t)

	require.NoError(t, svcs.Workflow.ToggleLike(ctx, "post_alpha_1"))
	require.NoError(t, svcs.Workflow.ToggleLike(ctx, "post_alpha_1"))

	post, err := repos.Posts.FindByID(ctx, "post_alpha_1")
	require.NoError(t, err)
	assert.Equal(t, 152, post.Likes)
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	svcs, repos := newTestServices(t)

	comment, err := svcs.Workflow.AddComment(ctx, "post_alpha_1", "founder_01", "Rohan (Founder)", "Count me in.")
	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)

	post, err := repos.Posts.FindByID(ctx, "post_alpha_1")
	require.NoError(t, err)
	require.Len(t, post.Comments, 1)
	assert.Equal(t, "Count me in.", post.Comments[0].Text)

	_, err = svcs.Workflow.AddComment(ctx, "ghost", "founder_01", "Rohan", "hello?")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestApplyToProject(t *testing.T) {
	ctx := context.Background()
	svcs, repos := newTestServices(t)

	post := submitIdea(t, svcs, "cohort_alpha", "founder_01", "GreenCart")

	applied, err := svcs.Workflow.ApplyToProject(ctx, post.ID, "dev_beta_1")
	require.NoError(t, err)
	assert.True(t, applied)

	// The second application is absorbed.
	applied, err = svcs.Workflow.ApplyToProject(ctx, post.ID, "dev_beta_1")
	require.NoError(t, err)
	assert.False(t, applied)

	stored, err := repos.Posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"dev_beta_1"}, stored.Applicants)

	// Applying to a non-idea post records nothing.
	applied, err = svcs.Workflow.ApplyToProject(ctx, "post_alpha_1", "dev_beta_1")
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestAssignDeveloperIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svcs, repos := newTestServices(t)

	post := submitIdea(t, svcs, "cohort_alpha", "founder_01", "GreenCart")

	require.NoError(t, svcs.Workflow.AssignDeveloper(ctx, post.ID, "dev_beta_1"))
	require.NoError(t, svcs.Workflow.AssignDeveloper(ctx, post.ID, "dev_beta_1"))

	stored, err := repos.Posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"dev_beta_1"}, stored.Team)
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	svcs, repos := newTestServices(t)

	require.NoError(t, svcs.Workflow.DeletePost(ctx, "post_alpha_1"))

	post, err := repos.Posts.FindByID(ctx, "post_alpha_1")
	require.NoError(t, err)
	assert.Nil(t, post)

	require.NoError(t, svcs.Workflow.DeletePost(ctx, "post_alpha_1"))
}

func TestListPostsRoleScoping(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	mine := submitIdea(t, svcs, "cohort_alpha", "founder_01", "GreenCart")
	other := submitIdea(t, svcs, "cohort_alpha", "founder_02", "RivalApp")

	// A founder sees their own ideas in any status, never a rival's.
	posts, err := svcs.Workflow.ListPosts(ctx, "cohort_alpha", models.PostTypeIdeaSubmission, models.RoleFounder, "founder_01")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, mine.ID, posts[0].ID)

	// A developer sees an idea only once on its team.
	posts, err = svcs.Workflow.ListPosts(ctx, "cohort_alpha", models.PostTypeIdeaSubmission, models.RoleDeveloper, "dev_x")
	require.NoError(t, err)
	assert.Empty(t, posts)

	require.NoError(t, svcs.Workflow.AssignDeveloper(ctx, other.ID, "dev_x"))
	posts, err = svcs.Workflow.ListPosts(ctx, "cohort_alpha", models.PostTypeIdeaSubmission, models.RoleDeveloper, "dev_x")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, other.ID, posts[0].ID)

	// A lead sees every idea regardless of status.
	posts, err = svcs.Workflow.ListPosts(ctx, "cohort_alpha", models.PostTypeIdeaSubmission, models.RoleLead, "admin_alpha")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestListPostsSprintFeedSurfacesVerifiedIdeas(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	idea := submitIdea(t, svcs, "cohort_alpha", "founder_01", "GreenCart")

	posts, err := svcs.Workflow.ListPosts(ctx, "cohort_alpha", models.PostTypeSprintUpdate, models.RoleLead, "admin_alpha")
	require.NoError(t, err)
	assert.Empty(t, posts, "a pending idea stays out of the sprint feed")

	_, err = svcs.Workflow.VerifyPost(ctx, idea.ID)
	require.NoError(t, err)

	posts, err = svcs.Workflow.ListPosts(ctx, "cohort_alpha", models.PostTypeSprintUpdate, models.RoleLead, "admin_alpha")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, idea.ID, posts[0].ID)

	// The surfacing is a moderation view, not a member one.
	posts, err = svcs.Workflow.ListPosts(ctx, "cohort_alpha", models.PostTypeSprintUpdate, models.RoleDeveloper, "dev_x")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestListPostsSortedNewestFirst(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	first := submitIdea(t, svcs, "cohort_alpha", "founder_01", "First")
	second := submitIdea(t, svcs, "cohort_alpha", "founder_01", "Second")

	posts, err := svcs.Workflow.ListPosts(ctx, "cohort_alpha", models.PostTypeIdeaSubmission, models.RoleFounder, "founder_01")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestListUserPosts(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	submitIdea(t, svcs, "cohort_alpha", "founder_01", "GreenCart")

	posts, err := svcs.Workflow.ListUserPosts(ctx, "founder_01")
	require.NoError(t, err)
	require.Len(t, posts, 1)

	posts, err = svcs.Workflow.ListUserPosts(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

// The full idea lifecycle: a founder submits, the lead verifies, a
// developer applies and gets assigned, and the project then shows up in
// the developer's feed.
func TestIdeaLifecycleEndToEnd(t *testing.T) {
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

	idea := submitIdea(t, svcs, "cohort_alpha", founder.UID, "GreenCart")

	pending, err := svcs.Workflow.ListPendingPosts(ctx, "cohort_alpha")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	verified, err := svcs.Workflow.VerifyPost(ctx, idea.ID)
	require.NoError(t, err)
	require.NotNil(t, verified.MVP)

	applied, err := svcs.Workflow.ApplyToProject(ctx, idea.ID, developer.UID)
	require.NoError(t, err)
	require.True(t, applied)

	require.NoError(t, svcs.Workflow.AssignDeveloper(ctx, idea.ID, developer.UID))

	feed, err := svcs.Workflow.ListPosts(ctx, "cohort_alpha", models.PostTypeIdeaSubmission, models.RoleDeveloper, developer.UID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, idea.ID, feed[0].ID)
	assert.True(t, feed[0].OnTeam(developer.UID))
}
