package services

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/squadran/buildforge/internal/app/repositories"
	"github.com/squadran/buildforge/internal/config"
	"github.com/squadran/buildforge/internal/pkg/idgen"
	"github.com/squadran/buildforge/internal/store"
)

const testSuperAdminSecret = "test-root-secret"

// newTestServices builds the full service set over a fresh in-memory
// store. The default seed set (two cohorts, a founder, a lead and a
// developer) applies on first access.
func newTestServices(t *testing.T) (*Services, *repositories.Repositories) {
	t.Helper()
	repos := repositories.NewRepositories(store.NewMemoryStore())
	svcs := NewServices(repos, idgen.New(), config.AuthConfig{
		SuperAdminSecret: testSuperAdminSecret,
		DefaultAccessKey: "admin",
	}, zerolog.Nop())
	return svcs, repos
}
