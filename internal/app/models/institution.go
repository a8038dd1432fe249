package models

// Institution defines a tenant workspace (a cohort). All users and posts
// are scoped to exactly one institution.
type Institution struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
	ThemeColor  string `json:"themeColor"`

	// AccessKey is the per-institution lead master key. Lead login is
	// validated against it rather than a process-wide constant.
	AccessKey string `json:"accessKey,omitempty"`
}
