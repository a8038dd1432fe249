package repositories

import (
	"context"
	"strings"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/seed"
	"github.com/squadran/buildforge/internal/store"
)

// InstitutionRepository handles store operations for institutions.
type InstitutionRepository struct {
	col *store.Collection[models.Institution]
}

// NewInstitutionRepository creates a new InstitutionRepository.
func NewInstitutionRepository(s store.Store) *InstitutionRepository {
	return &InstitutionRepository{
		col: store.NewCollection(s, store.CollectionInstitutions, seed.Institutions),
	}
}

// All returns every institution.
func (r *InstitutionRepository) All(ctx context.Context) ([]models.Institution, error) {
	return r.col.All(ctx)
}

// Update runs a read-modify-write cycle over the institutions collection.
func (r *InstitutionRepository) Update(ctx context.Context, fn func([]models.Institution) ([]models.Institution, error)) ([]models.Institution, error) {
	return r.col.Update(ctx, fn)
}

// FindByID returns the institution with the given id, or nil if absent.
func (r *InstitutionRepository) FindByID(ctx context.Context, id string) (*models.Institution, error) {
	institutions, err := r.col.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range institutions {
		if institutions[i].ID == id {
			return &institutions[i], nil
		}
	}
	return nil, nil
}

// FindByCode returns the institution whose code matches after trimming
// and case-folding, or nil if absent.
func (r *InstitutionRepository) FindByCode(ctx context.Context, code string) (*models.Institution, error) {
	institutions, err := r.col.All(ctx)
	if err != nil {
		return nil, err
	}
	want := strings.ToUpper(strings.TrimSpace(code))
	for i := range institutions {
		if strings.ToUpper(strings.TrimSpace(institutions[i].Code)) == want {
			return &institutions[i], nil
		}
	}
	return nil, nil
}
