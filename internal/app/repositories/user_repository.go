package repositories

import (
	"context"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/seed"
	"github.com/squadran/buildforge/internal/store"
)

// UserRepository handles store operations for user profiles.
type UserRepository struct {
	col *store.Collection[models.UserProfile]
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{
		col: store.NewCollection(s, store.CollectionUsers, seed.Users),
	}
}

// All returns every user profile.
func (r *UserRepository) All(ctx context.Context) ([]models.UserProfile, error) {
	return r.col.All(ctx)
}

// Update runs a read-modify-write cycle over the users collection.
func (r *UserRepository) Update(ctx context.Context, fn func([]models.UserProfile) ([]models.UserProfile, error)) ([]models.UserProfile, error) {
	return r.col.Update(ctx, fn)
}

// FindByUID returns the profile with the given uid, or nil if absent.
func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	users, err := r.col.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].UID == uid {
			return &users[i], nil
		}
	}
	return nil, nil
}

// FindByEmail returns the profile with the given email inside the
// institution, or nil if absent.
func (r *UserRepository) FindByEmail(ctx context.Context, email, institutionID string) (*models.UserProfile, error) {
	users, err := r.col.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email && users[i].InstitutionID == institutionID {
			return &users[i], nil
		}
	}
	return nil, nil
}
