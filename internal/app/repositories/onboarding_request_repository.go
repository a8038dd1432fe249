package repositories

import (
	"context"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/store"
)

// OnboardingRequestRepository handles store operations for cohort
// onboarding requests.
type OnboardingRequestRepository struct {
	col *store.Collection[models.OnboardingRequest]
}

// NewOnboardingRequestRepository creates a new OnboardingRequestRepository.
func NewOnboardingRequestRepository(s store.Store) *OnboardingRequestRepository {
	return &OnboardingRequestRepository{
		col: store.NewCollection[models.OnboardingRequest](s, store.CollectionRequests, nil),
	}
}

// All returns every onboarding request, in submission order.
func (r *OnboardingRequestRepository) All(ctx context.Context) ([]models.OnboardingRequest, error) {
	return r.col.All(ctx)
}

// Update runs a read-modify-write cycle over the requests collection.
func (r *OnboardingRequestRepository) Update(ctx context.Context, fn func([]models.OnboardingRequest) ([]models.OnboardingRequest, error)) ([]models.OnboardingRequest, error) {
	return r.col.Update(ctx, fn)
}

// FindByID returns the request with the given id, or nil if absent.
func (r *OnboardingRequestRepository) FindByID(ctx context.Context, id string) (*models.OnboardingRequest, error) {
	requests, err := r.col.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].ID == id {
			return &requests[i], nil
		}
	}
	return nil, nil
}
