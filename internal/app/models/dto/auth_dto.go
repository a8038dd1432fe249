package dto

import "github.com/squadran/buildforge/internal/app/models"

// SuperAdminLoginRequest authenticates the platform operator.
type SuperAdminLoginRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// LeadLoginRequest authenticates (or auto-provisions) a cohort lead.
type LeadLoginRequest struct {
	Email         string `json:"email" binding:"required,email"`
	AccessKey     string `json:"accessKey" binding:"required"`
	InstitutionID string `json:"institutionId" binding:"required"`
}

// LoginRequest is the founder/developer email login.
type LoginRequest struct {
	Email         string `json:"email" binding:"required,email"`
	InstitutionID string `json:"institutionId" binding:"required"`
}

// RegisterFounderRequest registers a founder profile in a cohort.
type RegisterFounderRequest struct {
	InstitutionID string `json:"institutionId" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	Bio           string `json:"bio"`

	StartupName        string `json:"startupName"`
	StartupStage       string `json:"startupStage"`
	StartupDescription string `json:"startupDescription"`
	TechHelpNeeded     string `json:"techHelpNeeded"`
	Budget             string `json:"budget"`
	Timeline           string `json:"timeline"`
}

// RegisterDeveloperRequest registers a developer profile in a cohort.
type RegisterDeveloperRequest struct {
	InstitutionID string `json:"institutionId" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	Bio           string `json:"bio"`

	College          string `json:"college"`
	Skills           string `json:"skills"`
	GithubURL        string `json:"githubUrl"`
	TimeAvailability string `json:"timeAvailability"`
	Experience       string `json:"experience"`
}

// AuthResponse carries the authenticated profile and its session token.
type AuthResponse struct {
	Token     string              `json:"token"`
	ExpiresIn int                 `json:"expiresIn"`
	User      *models.UserProfile `json:"user"`
}
