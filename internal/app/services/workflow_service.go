package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/app/models/dto"
	"github.com/squadran/buildforge/internal/app/repositories"
	"github.com/squadran/buildforge/internal/pkg/apperrors"
	"github.com/squadran/buildforge/internal/pkg/idgen"
)

// WorkflowService defines the idea-submission lifecycle state machine and
// the role-scoped feed queries.
type WorkflowService interface {
	CreatePost(ctx context.Context, req *dto.CreatePostRequest) (*models.Post, error)
	// VerifyPost transitions PENDING -> VERIFIED and, for idea
	// submissions, synthesizes the MVP build plan. Returns nil for an
	// absent post.
	VerifyPost(ctx context.Context, id string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	// ToggleLike increments the like counter. It is a counter, not a
	// per-user toggle: repeated calls from the same user keep counting.
	ToggleLike(ctx context.Context, id string) error
	AddComment(ctx context.Context, postID, userID, userName, text string) (*models.Comment, error)
	// ApplyToProject records an application to an idea submission and
	// reports whether it was newly recorded.
	ApplyToProject(ctx context.Context, postID, userID string) (bool, error)
	AssignDeveloper(ctx context.Context, postID, userID string) error

	ListPosts(ctx context.Context, institutionID string, postType models.PostType, requesterRole models.Role, requesterID string) ([]models.Post, error)
	ListPendingPosts(ctx context.Context, institutionID string) ([]models.Post, error)
	ListUserPosts(ctx context.Context, userID string) ([]models.Post, error)
}

type workflowServiceImpl struct {
	repos  *repositories.Repositories
	gen    *idgen.Generator
	logger zerolog.Logger
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(
	repos *repositories.Repositories,
	gen *idgen.Generator,
	logger zerolog.Logger,
) WorkflowService {
	return &workflowServiceImpl{
		repos:  repos,
		gen:    gen,
		logger: logger,
	}
}

// CreatePost inserts a PENDING draft at the head of the feed.
func (s *workflowServiceImpl) CreatePost(ctx context.Context, req *dto.CreatePostRequest) (*models.Post, error) {
	post := models.Post{
		ID:            s.gen.NewID("post"),
		InstitutionID: req.InstitutionID,
		AuthorID:      req.AuthorID,
		AuthorName:    req.AuthorName,
		AuthorRole:    req.AuthorRole,
		Title:         req.Title,
		Content:       req.Content,
		Image:         req.Image,
		Company:       req.Company,
		JobLink:       req.JobLink,
		Timestamp:     s.gen.Now(),
		Comments:      []models.Comment{},
		Status:        models.PostStatusPending,
		Type:          req.Type,
		Applicants:    []string{},
		Team:          []string{},
	}

	if _, err := s.repos.Posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		return append([]models.Post{post}, posts...), nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("postId", post.ID).
		Str("type", string(post.Type)).
		Str("institutionId", post.InstitutionID).
		Msg("Created post")
	return &post, nil
}

// VerifyPost moves a post to VERIFIED. Re-verifying an already verified
// idea regenerates the MVP; the plan is derived from the title alone, so
// the content comes out identical.
func (s *workflowServiceImpl) VerifyPost(ctx context.Context, id string) (*models.Post, error) {
	var verified *models.Post
	_, err := s.repos.Posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		for i := range posts {
			if posts[i].ID != id {
				continue
			}
			posts[i].Status = models.PostStatusVerified
			if posts[i].Type == models.PostTypeIdeaSubmission {
				posts[i].MVP = synthesizeMVP(posts[i].Title)
			}
			verified = &posts[i]
			return posts, nil
		}
		return posts, nil
	})
	if err != nil {
		return nil, err
	}
	if verified != nil {
		s.logger.Info().Str("postId", id).Msg("Verified post")
	}
	return verified, nil
}

// synthesizeMVP produces the boilerplate build plan attached to a
// verified idea.
func synthesizeMVP(title string) *models.MVPData {
	return &models.MVPData{
		Description: fmt.Sprintf("MVP Architecture for %q: Focus on core user loops. Authentication, Database Schema, and Primary Workflow.", title),
		TechStack:   []string{"React Native", "Firebase", "Node.js"},
		DocLink:     "#",
		Status:      models.MVPStatusReady,
	}
}

// DeletePost removes the post. Deleting an absent id is a no-op.
func (s *workflowServiceImpl) DeletePost(ctx context.Context, id string) error {
	_, err := s.repos.Posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		kept := posts[:0]
		for _, p := range posts {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		return kept, nil
	})
	return err
}

// ToggleLike increments the like counter. No-op for an absent post.
func (s *workflowServiceImpl) ToggleLike(ctx context.Context, id string) error {
	_, err := s.repos.Posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		for i := range posts {
			if posts[i].ID == id {
				posts[i].Likes++
				break
			}
		}
		return posts, nil
	})
	return err
}

// AddComment appends an immutable comment to the post. Commenting on an
// absent post fails with a not-found error instead of silently dropping
// the comment.
func (s *workflowServiceImpl) AddComment(ctx context.Context, postID, userID, userName, text string) (*models.Comment, error) {
	comment := models.Comment{
		ID:        s.gen.NewID("c"),
		UserID:    userID,
		UserName:  userName,
		Text:      text,
		Timestamp: s.gen.Now(),
	}

	_, err := s.repos.Posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		for i := range posts {
			if posts[i].ID == postID {
				posts[i].Comments = append(posts[i].Comments, comment)
				return posts, nil
			}
		}
		return nil, apperrors.NewNotFoundError("post not found")
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ApplyToProject adds the user to an idea's applicant set. Returns false
// without error when the post is absent, not an idea submission, or the
// user already applied.
func (s *workflowServiceImpl) ApplyToProject(ctx context.Context, postID, userID string) (bool, error) {
	applied := false
	_, err := s.repos.Posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		for i := range posts {
			if posts[i].ID != postID || posts[i].Type != models.PostTypeIdeaSubmission {
				continue
			}
			if posts[i].HasApplicant(userID) {
				return posts, nil
			}
			posts[i].Applicants = append(posts[i].Applicants, userID)
			applied = true
			return posts, nil
		}
		return posts, nil
	})
	if err != nil {
		return false, err
	}
	if applied {
		s.logger.Info().Str("postId", postID).Str("uid", userID).Msg("Recorded project application")
	}
	return applied, nil
}

// AssignDeveloper adds the user to an idea's team. Idempotent; a no-op
// for non-idea posts.
func (s *workflowServiceImpl) AssignDeveloper(ctx context.Context, postID, userID string) error {
	_, err := s.repos.Posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		for i := range posts {
			if posts[i].ID != postID || posts[i].Type != models.PostTypeIdeaSubmission {
				continue
			}
			if !posts[i].OnTeam(userID) {
				posts[i].Team = append(posts[i].Team, userID)
			}
			return posts, nil
		}
		return posts, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("postId", postID).Str("uid", userID).Msg("Assigned developer to project team")
	return nil
}

// ListPosts is the role-scoped feed query:
//   - institution scope always applies first;
//   - LEAD and SUPER_ADMIN see every post of the requested type, and a
//     SPRINT_UPDATE request additionally surfaces verified idea
//     submissions;
//   - a FOUNDER sees only their own idea submissions (any status), and
//     only verified posts of any other requested type;
//   - a DEVELOPER sees only idea submissions whose team contains them,
//     and only verified posts of any other requested type;
//   - any other role sees nothing.
//
// Results are sorted by timestamp descending.
func (s *workflowServiceImpl) ListPosts(ctx context.Context, institutionID string, postType models.PostType, requesterRole models.Role, requesterID string) ([]models.Post, error) {
	posts, err := s.repos.Posts.All(ctx)
	if err != nil {
		return nil, err
	}

	result := []models.Post{}
	for _, p := range posts {
		if p.InstitutionID != institutionID {
			continue
		}
		if postVisible(&p, postType, requesterRole, requesterID) {
			result = append(result, p)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp > result[j].Timestamp
	})
	return result, nil
}

func postVisible(p *models.Post, postType models.PostType, role models.Role, requesterID string) bool {
	switch role {
	case models.RoleLead, models.RoleSuperAdmin:
		if p.Type == postType {
			return true
		}
		// Verified ideas surface in the sprint feed.
		return postType == models.PostTypeSprintUpdate &&
			p.Type == models.PostTypeIdeaSubmission &&
			p.Status == models.PostStatusVerified

	case models.RoleFounder:
		if p.Type == models.PostTypeIdeaSubmission {
			return p.AuthorID == requesterID
		}
		return p.Type == postType && p.Status == models.PostStatusVerified

	case models.RoleDeveloper:
		if p.Type == models.PostTypeIdeaSubmission {
			return p.OnTeam(requesterID)
		}
		return p.Type == postType && p.Status == models.PostStatusVerified
	}

	return false
}

// ListPendingPosts is the moderation queue: every PENDING post in the
// cohort regardless of type.
func (s *workflowServiceImpl) ListPendingPosts(ctx context.Context, institutionID string) ([]models.Post, error) {
	posts, err := s.repos.Posts.All(ctx)
	if err != nil {
		return nil, err
	}
	result := []models.Post{}
	for _, p := range posts {
		if p.InstitutionID == institutionID && p.Status == models.PostStatusPending {
			result = append(result, p)
		}
	}
	return result, nil
}

// ListUserPosts returns every post by the author, newest first.
func (s *workflowServiceImpl) ListUserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	posts, err := s.repos.Posts.All(ctx)
	if err != nil {
		return nil, err
	}
	result := []models.Post{}
	for _, p := range posts {
		if p.AuthorID == userID {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp > result[j].Timestamp
	})
	return result, nil
}
