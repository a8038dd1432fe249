package dto

// UpdateProfileRequest is a partial profile update. Nil fields are left
// untouched; uid and role are not mutable through this path.
type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Avatar *string `json:"avatar"`
	Bio    *string `json:"bio"`

	StartupName        *string `json:"startupName"`
	StartupStage       *string `json:"startupStage"`
	StartupDescription *string `json:"startupDescription"`
	TechHelpNeeded     *string `json:"techHelpNeeded"`
	Budget             *string `json:"budget"`
	Timeline           *string `json:"timeline"`

	College          *string `json:"college"`
	Skills           *string `json:"skills"`
	GithubURL        *string `json:"githubUrl"`
	TimeAvailability *string `json:"timeAvailability"`
	Experience       *string `json:"experience"`
}
