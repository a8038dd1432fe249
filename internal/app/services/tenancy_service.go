package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/app/models/dto"
	"github.com/squadran/buildforge/internal/app/repositories"
	"github.com/squadran/buildforge/internal/config"
	"github.com/squadran/buildforge/internal/pkg/apperrors"
	"github.com/squadran/buildforge/internal/pkg/idgen"
)

const (
	defaultInstitutionLogo = "https://cdn-icons-png.flaticon.com/512/3135/3135715.png"
	defaultThemeColor      = "#4AA4F2"
)

// themePalette is the fixed set a newly approved cohort's theme color is
// drawn from.
var themePalette = []string{"#FF725E", "#4AA4F2", "#6C63FF", "#43D9AD", "#FFC75F"}

// TenancyService defines cohort lifecycle and the onboarding-request
// approval workflow.
type TenancyService interface {
	CreateInstitution(ctx context.Context, req *dto.CreateInstitutionRequest) (*models.Institution, error)
	DeleteInstitution(ctx context.Context, id string) error
	ListInstitutions(ctx context.Context) ([]models.Institution, error)
	GetInstitutionByCode(ctx context.Context, code string) (*models.Institution, error)

	SubmitOnboardingRequest(ctx context.Context, req *dto.SubmitOnboardingRequest) (*models.OnboardingRequest, error)
	ListPendingRequests(ctx context.Context) ([]models.OnboardingRequest, error)
	// ApproveRequest approves a PENDING request and opens its cohort.
	// Approving a request that is already terminal is a no-op and
	// returns a nil institution.
	ApproveRequest(ctx context.Context, id string) (*models.Institution, error)
	RejectRequest(ctx context.Context, id string) error
}

type tenancyServiceImpl struct {
	repos  *repositories.Repositories
	gen    *idgen.Generator
	auth   config.AuthConfig
	logger zerolog.Logger
}

// NewTenancyService creates a new TenancyService.
func NewTenancyService(
	repos *repositories.Repositories,
	gen *idgen.Generator,
	auth config.AuthConfig,
	logger zerolog.Logger,
) TenancyService {
	return &tenancyServiceImpl{
		repos:  repos,
		gen:    gen,
		auth:   auth,
		logger: logger,
	}
}

// CreateInstitution allocates the cohort, its default lead and a verified
// welcome post. The store has no transactions, so the three writes run in
// order and a failure rolls the earlier ones back.
func (s *tenancyServiceImpl) CreateInstitution(ctx context.Context, req *dto.CreateInstitutionRequest) (*models.Institution, error) {
	institution := models.Institution{
		ID:          s.gen.NewID("inst"),
		Name:        req.Name,
		Code:        req.Code,
		Logo:        req.Logo,
		Description: req.Description,
		ThemeColor:  req.ThemeColor,
		AccessKey:   s.auth.DefaultAccessKey,
	}
	if institution.Logo == "" {
		institution.Logo = defaultInstitutionLogo
	}
	if institution.ThemeColor == "" {
		institution.ThemeColor = defaultThemeColor
	}

	lead := models.UserProfile{
		UID:           "admin_" + institution.ID,
		InstitutionID: institution.ID,
		Name:          req.Code + " Lead",
		Email:         fmt.Sprintf("lead@%s.io", strings.ToLower(req.Code)),
		Role:          models.RoleLead,
		Avatar:        defaultAvatar(req.Code + " Lead"),
	}

	welcome := models.Post{
		ID:            "post_welcome_" + institution.ID,
		InstitutionID: institution.ID,
		AuthorID:      lead.UID,
		AuthorName:    lead.Name,
		AuthorRole:    models.RoleLead,
		Title:         "Welcome to BuildForge",
		Content:       fmt.Sprintf("Welcome to the %s workspace. Submit ideas to begin the forging process.", req.Name),
		Timestamp:     s.gen.Now(),
		Comments:      []models.Comment{},
		Status:        models.PostStatusVerified,
		Type:          models.PostTypeSprintUpdate,
	}

	if _, err := s.repos.Institutions.Update(ctx, func(institutions []models.Institution) ([]models.Institution, error) {
		return append(institutions, institution), nil
	}); err != nil {
		return nil, err
	}

	if _, err := s.repos.Users.Update(ctx, func(users []models.UserProfile) ([]models.UserProfile, error) {
		return append(users, lead), nil
	}); err != nil {
		s.rollbackInstitution(ctx, institution.ID)
		return nil, err
	}

	if _, err := s.repos.Posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		return append([]models.Post{welcome}, posts...), nil
	}); err != nil {
		s.rollbackLead(ctx, lead.UID)
		s.rollbackInstitution(ctx, institution.ID)
		return nil, err
	}

	s.logger.Info().
		Str("institutionId", institution.ID).
		Str("code", institution.Code).
		Str("leadUid", lead.UID).
		Msg("Created institution with default lead and welcome post")
	return &institution, nil
}

// rollbackInstitution undoes the institution write of a partially failed
// creation. Best effort: the rollback target may itself be unreachable.
func (s *tenancyServiceImpl) rollbackInstitution(ctx context.Context, id string) {
	if _, err := s.repos.Institutions.Update(ctx, func(institutions []models.Institution) ([]models.Institution, error) {
		kept := institutions[:0]
		for _, inst := range institutions {
			if inst.ID != id {
				kept = append(kept, inst)
			}
		}
		return kept, nil
	}); err != nil {
		s.logger.Error().Err(err).Str("institutionId", id).Msg("Failed to roll back institution write")
	}
}

func (s *tenancyServiceImpl) rollbackLead(ctx context.Context, uid string) {
	if _, err := s.repos.Users.Update(ctx, func(users []models.UserProfile) ([]models.UserProfile, error) {
		kept := users[:0]
		for _, u := range users {
			if u.UID != uid {
				kept = append(kept, u)
			}
		}
		return kept, nil
	}); err != nil {
		s.logger.Error().Err(err).Str("uid", uid).Msg("Failed to roll back lead write")
	}
}

// DeleteInstitution removes the cohort and cascades to its users and
// posts. Messages and comments referencing deleted users are left in
// place.
func (s *tenancyServiceImpl) DeleteInstitution(ctx context.Context, id string) error {
	if _, err := s.repos.Institutions.Update(ctx, func(institutions []models.Institution) ([]models.Institution, error) {
		kept := institutions[:0]
		for _, inst := range institutions {
			if inst.ID != id {
				kept = append(kept, inst)
			}
		}
		return kept, nil
	}); err != nil {
		return err
	}

	if _, err := s.repos.Users.Update(ctx, func(users []models.UserProfile) ([]models.UserProfile, error) {
		kept := users[:0]
		for _, u := range users {
			if u.InstitutionID != id {
				kept = append(kept, u)
			}
		}
		return kept, nil
	}); err != nil {
		return err
	}

	if _, err := s.repos.Posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		kept := posts[:0]
		for _, p := range posts {
			if p.InstitutionID != id {
				kept = append(kept, p)
			}
		}
		return kept, nil
	}); err != nil {
		return err
	}

	s.logger.Info().Str("institutionId", id).Msg("Deleted institution with cascading users and posts")
	return nil
}

// ListInstitutions returns every cohort.
func (s *tenancyServiceImpl) ListInstitutions(ctx context.Context) ([]models.Institution, error) {
	return s.repos.Institutions.All(ctx)
}

// GetInstitutionByCode resolves a cohort by its join code,
// case-insensitively.
func (s *tenancyServiceImpl) GetInstitutionByCode(ctx context.Context, code string) (*models.Institution, error) {
	institution, err := s.repos.Institutions.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if institution == nil {
		return nil, apperrors.NewNotFoundError("institution not found")
	}
	return institution, nil
}

// SubmitOnboardingRequest records a new PENDING request. No deduplication:
// repeated submissions each create a request.
func (s *tenancyServiceImpl) SubmitOnboardingRequest(ctx context.Context, req *dto.SubmitOnboardingRequest) (*models.OnboardingRequest, error) {
	request := models.OnboardingRequest{
		ID:            s.gen.NewID("req"),
		InstituteName: req.InstituteName,
		Email:         req.Email,
		ContactName:   req.ContactName,
		Status:        models.RequestStatusPending,
	}

	if _, err := s.repos.Requests.Update(ctx, func(requests []models.OnboardingRequest) ([]models.OnboardingRequest, error) {
		return append(requests, request), nil
	}); err != nil {
		return nil, err
	}
	return &request, nil
}

// ListPendingRequests returns the open onboarding queue.
func (s *tenancyServiceImpl) ListPendingRequests(ctx context.Context) ([]models.OnboardingRequest, error) {
	requests, err := s.repos.Requests.All(ctx)
	if err != nil {
		return nil, err
	}
	pending := []models.OnboardingRequest{}
	for _, r := range requests {
		if r.Status == models.RequestStatusPending {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

// ApproveRequest marks a PENDING request APPROVED and opens its cohort.
// The status guard makes a duplicate call a no-op instead of
// double-creating the institution.
func (s *tenancyServiceImpl) ApproveRequest(ctx context.Context, id string) (*models.Institution, error) {
	var approved models.OnboardingRequest
	newlyApproved := false

	_, err := s.repos.Requests.Update(ctx, func(requests []models.OnboardingRequest) ([]models.OnboardingRequest, error) {
		for i := range requests {
			if requests[i].ID != id {
				continue
			}
			if requests[i].Status != models.RequestStatusPending {
				return requests, nil
			}
			requests[i].Status = models.RequestStatusApproved
			approved = requests[i]
			newlyApproved = true
			return requests, nil
		}
		return nil, apperrors.NewNotFoundError("onboarding request not found")
	})
	if err != nil {
		return nil, err
	}
	if !newlyApproved {
		s.logger.Warn().Str("requestId", id).Msg("Ignoring approval of a non-pending onboarding request")
		return nil, nil
	}

	return s.CreateInstitution(ctx, &dto.CreateInstitutionRequest{
		Name:        approved.InstituteName,
		Code:        deriveCode(approved.InstituteName),
		Description: "Partner Cohort",
		ThemeColor:  themePalette[rand.Intn(len(themePalette))],
	})
}

// deriveCode builds a cohort join code from the first four characters of
// the institute name, uppercased.
func deriveCode(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > 4 {
		runes = runes[:4]
	}
	return strings.ToUpper(string(runes))
}

// RejectRequest marks a PENDING request REJECTED. No institution is
// created; rejecting a terminal request is a no-op.
func (s *tenancyServiceImpl) RejectRequest(ctx context.Context, id string) error {
	_, err := s.repos.Requests.Update(ctx, func(requests []models.OnboardingRequest) ([]models.OnboardingRequest, error) {
		for i := range requests {
			if requests[i].ID != id {
				continue
			}
			if requests[i].Status == models.RequestStatusPending {
				requests[i].Status = models.RequestStatusRejected
			}
			return requests, nil
		}
		return nil, apperrors.NewNotFoundError("onboarding request not found")
	})
	return err
}
