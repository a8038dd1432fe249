// Package repositories provides typed, per-entity views over the entity
// store. Repositories expose load/update primitives and simple lookups;
// all role-scoped filtering lives in the services.
package repositories

import (
	"github.com/squadran/buildforge/internal/store"
)

// Repositories bundles the per-entity repositories built over one store.
type Repositories struct {
	Institutions *InstitutionRepository
	Users        *UserRepository
	Posts        *PostRepository
	Messages     *MessageRepository
	Requests     *OnboardingRequestRepository
}

// NewRepositories wires every repository over the given store, with the
// default seed set applied on first access to the known collections.
func NewRepositories(s store.Store) *Repositories {
	return &Repositories{
		Institutions: NewInstitutionRepository(s),
		Users:        NewUserRepository(s),
		Posts:        NewPostRepository(s),
		Messages:     NewMessageRepository(s),
		Requests:     NewOnboardingRequestRepository(s),
	}
}
