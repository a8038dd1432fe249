package dto

// CreateInstitutionRequest opens a new cohort.
type CreateInstitutionRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
	ThemeColor  string `json:"themeColor"`
}

// SubmitOnboardingRequest is an external application for a new cohort.
type SubmitOnboardingRequest struct {
	InstituteName string `json:"instituteName" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	ContactName   string `json:"contactName" binding:"required"`
}
