// Package services holds the decision logic of the platform: who may
// see, create or mutate what, and the idea-submission lifecycle. Every
// operation is a full read-modify-write cycle against the entity store.
package services

import (
	"github.com/rs/zerolog"

	"github.com/squadran/buildforge/internal/app/repositories"
	"github.com/squadran/buildforge/internal/config"
	"github.com/squadran/buildforge/internal/pkg/idgen"
)

// Services bundles the four core services.
type Services struct {
	Identity  IdentityService
	Tenancy   TenancyService
	Workflow  WorkflowService
	Messaging MessagingService
}

// NewServices wires the services over a shared repository set.
func NewServices(
	repos *repositories.Repositories,
	gen *idgen.Generator,
	authCfg config.AuthConfig,
	logger zerolog.Logger,
) *Services {
	return &Services{
		Identity:  NewIdentityService(repos, gen, authCfg, logger),
		Tenancy:   NewTenancyService(repos, gen, authCfg, logger),
		Workflow:  NewWorkflowService(repos, gen, logger),
		Messaging: NewMessagingService(repos, gen, logger),
	}
}
