package services

import (
	"context"
	"crypto/subtle"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/app/models/dto"
	"github.com/squadran/buildforge/internal/app/repositories"
	"github.com/squadran/buildforge/internal/config"
	"github.com/squadran/buildforge/internal/pkg/apperrors"
	"github.com/squadran/buildforge/internal/pkg/idgen"
	"github.com/squadran/buildforge/internal/seed"
)

// IdentityService defines authentication stand-ins, registration, profile
// management and the role-scoped visibility queries over users.
type IdentityService interface {
	AuthenticateSuperAdmin(ctx context.Context, secret string) (*models.UserProfile, error)
	RegisterFounder(ctx context.Context, req *dto.RegisterFounderRequest) (*models.UserProfile, error)
	RegisterDeveloper(ctx context.Context, req *dto.RegisterDeveloperRequest) (*models.UserProfile, error)
	LoginLead(ctx context.Context, email, accessKey, institutionID string) (*models.UserProfile, error)
	LoginByEmail(ctx context.Context, email, institutionID string) (*models.UserProfile, error)
	GetUser(ctx context.Context, uid string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, uid string, req *dto.UpdateProfileRequest) (*models.UserProfile, error)
	ToggleBlock(ctx context.Context, uid string) (*models.UserProfile, error)
	DeleteUser(ctx context.Context, uid string) error

	ListDevelopers(ctx context.Context, institutionID string) ([]models.UserProfile, error)
	ListManageableUsers(ctx context.Context, institutionID string) ([]models.UserProfile, error)
	ListInstitutionUsers(ctx context.Context, institutionID string) ([]models.UserProfile, error)
	ListMessageableUsers(ctx context.Context, requesterUID, institutionID string) ([]models.UserProfile, error)
	ListConnections(ctx context.Context, requesterUID, institutionID string) ([]models.UserProfile, error)
}

type identityServiceImpl struct {
	repos  *repositories.Repositories
	gen    *idgen.Generator
	auth   config.AuthConfig
	logger zerolog.Logger
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(
	repos *repositories.Repositories,
	gen *idgen.Generator,
	auth config.AuthConfig,
	logger zerolog.Logger,
) IdentityService {
	return &identityServiceImpl{
		repos:  repos,
		gen:    gen,
		auth:   auth,
		logger: logger,
	}
}

func secretsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func defaultAvatar(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name)
}

// AuthenticateSuperAdmin validates the platform shared secret and returns
// the unique SUPER_ADMIN profile, creating it from the fixed template on
// first use. The create runs inside the collection's read-modify-write
// cycle, so exactly one super admin can ever exist.
func (s *identityServiceImpl) AuthenticateSuperAdmin(ctx context.Context, secret string) (*models.UserProfile, error) {
	if !secretsEqual(secret, s.auth.SuperAdminSecret) {
		s.logger.Warn().Msg("Super admin authentication rejected")
		return nil, apperrors.ErrInvalidAccessKey
	}

	var admin models.UserProfile
	_, err := s.repos.Users.Update(ctx, func(users []models.UserProfile) ([]models.UserProfile, error) {
		for i := range users {
			if users[i].Role == models.RoleSuperAdmin {
				admin = users[i]
				return users, nil
			}
		}
		admin = seed.SuperAdmin()
		s.logger.Info().Str("uid", admin.UID).Msg("Creating super admin profile on first login")
		return append(users, admin), nil
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// RegisterFounder creates a FOUNDER profile in the target cohort.
func (s *identityServiceImpl) RegisterFounder(ctx context.Context, req *dto.RegisterFounderRequest) (*models.UserProfile, error) {
	user := models.UserProfile{
		UID:                s.gen.NewID("founder"),
		InstitutionID:      req.InstitutionID,
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Role:               models.RoleFounder,
		Avatar:             defaultAvatar(req.Name),
		Bio:                req.Bio,
		StartupName:        req.StartupName,
		StartupStage:       req.StartupStage,
		StartupDescription: req.StartupDescription,
		TechHelpNeeded:     req.TechHelpNeeded,
		Budget:             req.Budget,
		Timeline:           req.Timeline,
	}
	return s.register(ctx, user)
}

// RegisterDeveloper creates a DEVELOPER profile in the target cohort.
func (s *identityServiceImpl) RegisterDeveloper(ctx context.Context, req *dto.RegisterDeveloperRequest) (*models.UserProfile, error) {
	user := models.UserProfile{
		UID:              s.gen.NewID("dev"),
		InstitutionID:    req.InstitutionID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Role:             models.RoleDeveloper,
		Avatar:           defaultAvatar(req.Name),
		Bio:              req.Bio,
		College:          req.College,
		Skills:           req.Skills,
		GithubURL:        req.GithubURL,
		TimeAvailability: req.TimeAvailability,
		Experience:       req.Experience,
	}
	return s.register(ctx, user)
}

// register appends the new profile, rejecting a duplicate email among the
// cohort's active users. The duplicate check runs inside the same
// read-modify-write cycle as the append.
func (s *identityServiceImpl) register(ctx context.Context, user models.UserProfile) (*models.UserProfile, error) {
	_, err := s.repos.Users.Update(ctx, func(users []models.UserProfile) ([]models.UserProfile, error) {
		for i := range users {
			if users[i].InstitutionID == user.InstitutionID && users[i].Email == user.Email && !users[i].Blocked {
				return nil, apperrors.ErrDuplicateEmail
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("uid", user.UID).
		Str("role", string(user.Role)).
		Str("institutionId", user.InstitutionID).
		Msg("Registered user")
	return &user, nil
}

// LoginLead validates the institution's master key and returns the LEAD
// with the matching email, auto-provisioning one when the key is valid
// but no such lead exists yet.
func (s *identityServiceImpl) LoginLead(ctx context.Context, email, accessKey, institutionID string) (*models.UserProfile, error) {
	institution, err := s.repos.Institutions.FindByID(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	// Institutions created before the per-institution key existed fall
	// back to the configured default key.
	wantKey := s.auth.DefaultAccessKey
	if institution != nil && institution.AccessKey != "" {
		wantKey = institution.AccessKey
	}
	if !secretsEqual(accessKey, wantKey) {
		s.logger.Warn().Str("institutionId", institutionID).Msg("Lead login rejected: invalid access key")
		return nil, apperrors.ErrInvalidAccessKey
	}

	var lead models.UserProfile
	_, err = s.repos.Users.Update(ctx, func(users []models.UserProfile) ([]models.UserProfile, error) {
		for i := range users {
			if users[i].Email == email && users[i].Role == models.RoleLead && users[i].InstitutionID == institutionID {
				lead = users[i]
				return users, nil
			}
		}

		name := "Lead"
		if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		}
		lead = models.UserProfile{
			UID:           s.gen.NewID("lead"),
			InstitutionID: institutionID,
			Name:          name,
			Email:         email,
			Role:          models.RoleLead,
			Avatar:        defaultAvatar("Lead"),
		}
		s.logger.Info().Str("uid", lead.UID).Str("institutionId", institutionID).Msg("Auto-provisioned lead on first login")
		return append(users, lead), nil
	})
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// LoginByEmail is the founder/developer login.
func (s *identityServiceImpl) LoginByEmail(ctx context.Context, email, institutionID string) (*models.UserProfile, error) {
	user, err := s.repos.Users.FindByEmail(ctx, email, institutionID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found, please register")
	}
	if user.Blocked {
		return nil, apperrors.ErrAccountBlocked
	}
	return user, nil
}

// GetUser returns the profile with the given uid.
func (s *identityServiceImpl) GetUser(ctx context.Context, uid string) (*models.UserProfile, error) {
	user, err := s.repos.Users.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return user, nil
}

// UpdateProfile merges the non-nil fields into the profile. Role and uid
// are immutable.
func (s *identityServiceImpl) UpdateProfile(ctx context.Context, uid string, req *dto.UpdateProfileRequest) (*models.UserProfile, error) {
	var updated models.UserProfile
	_, err := s.repos.Users.Update(ctx, func(users []models.UserProfile) ([]models.UserProfile, error) {
		for i := range users {
			if users[i].UID != uid {
				continue
			}
			applyProfileUpdate(&users[i], req)
			updated = users[i]
			return users, nil
		}
		return nil, apperrors.NewNotFoundError("user not found")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func applyProfileUpdate(user *models.UserProfile, req *dto.UpdateProfileRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&user.Name, req.Name)
	set(&user.Email, req.Email)
	set(&user.Phone, req.Phone)
	set(&user.Avatar, req.Avatar)
	set(&user.Bio, req.Bio)
	set(&user.StartupName, req.StartupName)
	set(&user.StartupStage, req.StartupStage)
	set(&user.StartupDescription, req.StartupDescription)
	set(&user.TechHelpNeeded, req.TechHelpNeeded)
	set(&user.Budget, req.Budget)
	set(&user.Timeline, req.Timeline)
	set(&user.College, req.College)
	set(&user.Skills, req.Skills)
	set(&user.GithubURL, req.GithubURL)
	set(&user.TimeAvailability, req.TimeAvailability)
	set(&user.Experience, req.Experience)
}

// ToggleBlock flips the blocked flag on the profile.
func (s *identityServiceImpl) ToggleBlock(ctx context.Context, uid string) (*models.UserProfile, error) {
	var updated models.UserProfile
	_, err := s.repos.Users.Update(ctx, func(users []models.UserProfile) ([]models.UserProfile, error) {
		for i := range users {
			if users[i].UID != uid {
				continue
			}
			users[i].Blocked = !users[i].Blocked
			updated = users[i]
			return users, nil
		}
		return nil, apperrors.NewNotFoundError("user not found")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("uid", uid).Bool("blocked", updated.Blocked).Msg("Toggled user block flag")
	return &updated, nil
}

// DeleteUser removes the profile. Deleting an absent uid is a no-op.
func (s *identityServiceImpl) DeleteUser(ctx context.Context, uid string) error {
	_, err := s.repos.Users.Update(ctx, func(users []models.UserProfile) ([]models.UserProfile, error) {
		kept := users[:0]
		for _, u := range users {
			if u.UID != uid {
				kept = append(kept, u)
			}
		}
		return kept, nil
	})
	return err
}

// ListDevelopers returns the cohort's unblocked developers, the pool a
// lead assigns to idea teams.
func (s *identityServiceImpl) ListDevelopers(ctx context.Context, institutionID string) ([]models.UserProfile, error) {
	users, err := s.repos.Users.All(ctx)
	if err != nil {
		return nil, err
	}
	result := []models.UserProfile{}
	for _, u := range users {
		if u.InstitutionID == institutionID && u.Role == models.RoleDeveloper && !u.Blocked {
			result = append(result, u)
		}
	}
	return result, nil
}

// ListManageableUsers returns the cohort members a lead can manage:
// everyone except leads and the super admin.
func (s *identityServiceImpl) ListManageableUsers(ctx context.Context, institutionID string) ([]models.UserProfile, error) {
	users, err := s.repos.Users.All(ctx)
	if err != nil {
		return nil, err
	}
	result := []models.UserProfile{}
	for _, u := range users {
		if u.InstitutionID == institutionID && u.Role != models.RoleLead && u.Role != models.RoleSuperAdmin {
			result = append(result, u)
		}
	}
	return result, nil
}

// ListInstitutionUsers returns every cohort member including leads, for
// the platform operator's dashboard.
func (s *identityServiceImpl) ListInstitutionUsers(ctx context.Context, institutionID string) ([]models.UserProfile, error) {
	users, err := s.repos.Users.All(ctx)
	if err != nil {
		return nil, err
	}
	result := []models.UserProfile{}
	for _, u := range users {
		if u.InstitutionID == institutionID && u.Role != models.RoleSuperAdmin {
			result = append(result, u)
		}
	}
	return result, nil
}

// ListMessageableUsers returns the cohort's unblocked non-lead members
// excluding the requester, for the networking screen.
func (s *identityServiceImpl) ListMessageableUsers(ctx context.Context, requesterUID, institutionID string) ([]models.UserProfile, error) {
	users, err := s.repos.Users.All(ctx)
	if err != nil {
		return nil, err
	}
	result := []models.UserProfile{}
	for _, u := range users {
		if u.InstitutionID == institutionID && u.UID != requesterUID && u.Role != models.RoleLead && !u.Blocked {
			result = append(result, u)
		}
	}
	return result, nil
}

// ListConnections returns the social graph a user may message:
//   - SUPER_ADMIN: everyone on the platform except self (blocked included).
//   - LEAD: every unblocked member of the cohort except self.
//   - FOUNDER: the cohort's unblocked leads, plus every unblocked
//     developer on the founder's own posts' teams.
//   - DEVELOPER: the cohort's unblocked leads, plus every unblocked
//     founder whose post's team contains this developer.
//
// The result is a set: two users sharing several projects appear once.
func (s *identityServiceImpl) ListConnections(ctx context.Context, requesterUID, institutionID string) ([]models.UserProfile, error) {
	requester, err := s.repos.Users.FindByUID(ctx, requesterUID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	users, err := s.repos.Users.All(ctx)
	if err != nil {
		return nil, err
	}

	if requester.Role == models.RoleSuperAdmin {
		result := []models.UserProfile{}
		for _, u := range users {
			if u.UID != requester.UID {
				result = append(result, u)
			}
		}
		return result, nil
	}

	if requester.Role == models.RoleLead {
		result := []models.UserProfile{}
		for _, u := range users {
			if u.InstitutionID == institutionID && u.UID != requester.UID && !u.Blocked {
				result = append(result, u)
			}
		}
		return result, nil
	}

	byUID := make(map[string]models.UserProfile, len(users))
	for _, u := range users {
		byUID[u.UID] = u
	}

	seen := make(map[string]bool)
	result := []models.UserProfile{}
	add := func(uid string) {
		if uid == requester.UID || seen[uid] {
			return
		}
		u, ok := byUID[uid]
		if !ok || u.Blocked {
			return
		}
		seen[uid] = true
		result = append(result, u)
	}

	// The cohort leads are always reachable.
	for _, u := range users {
		if u.InstitutionID == institutionID && u.Role == models.RoleLead {
			add(u.UID)
		}
	}

	posts, err := s.repos.Posts.All(ctx)
	if err != nil {
		return nil, err
	}

	switch requester.Role {
	case models.RoleFounder:
		for _, p := range posts {
			if p.AuthorID != requester.UID {
				continue
			}
			for _, devUID := range p.Team {
				add(devUID)
			}
		}
	case models.RoleDeveloper:
		for _, p := range posts {
			if p.OnTeam(requester.UID) {
				add(p.AuthorID)
			}
		}
	}

	return result, nil
}
