package models

// RequestStatus is the onboarding request state. APPROVED and REJECTED
// are terminal; requests are never deleted.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// OnboardingRequest is an external application to open a new cohort.
type OnboardingRequest struct {
	ID            string        `json:"id"`
	InstituteName string        `json:"instituteName"`
	Email         string        `json:"email"`
	ContactName   string        `json:"contactName"`
	Status        RequestStatus `json:"status"`
}
