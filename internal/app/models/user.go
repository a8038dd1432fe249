package models

// Role defines the single role a profile carries for its whole lifetime.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleLead       Role = "LEAD"
	RoleFounder    Role = "FOUNDER"
	RoleDeveloper  Role = "DEVELOPER"
)

// PlatformInstitutionID is the sentinel institution the super admin
// belongs to; it never matches a real cohort.
const PlatformInstitutionID = "squadran"

// UserProfile defines a member of a cohort, or the platform super admin.
type UserProfile struct {
	UID           string `json:"uid"`
	InstitutionID string `json:"institutionId"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Role          Role   `json:"role"`
	Avatar        string `json:"avatar,omitempty"`
	Bio           string `json:"bio,omitempty"`
	Blocked       bool   `json:"blocked"`

	// Founder-specific fields
	StartupName        string `json:"startupName,omitempty"`
	StartupStage       string `json:"startupStage,omitempty"`
	StartupDescription string `json:"startupDescription,omitempty"`
	TechHelpNeeded     string `json:"techHelpNeeded,omitempty"`
	Budget             string `json:"budget,omitempty"`
	Timeline           string `json:"timeline,omitempty"`

	// Developer-specific fields
	College          string `json:"college,omitempty"`
	Skills           string `json:"skills,omitempty"`
	GithubURL        string `json:"githubUrl,omitempty"`
	TimeAvailability string `json:"timeAvailability,omitempty"`
	Experience       string `json:"experience,omitempty"`
}
