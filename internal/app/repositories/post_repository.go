package repositories

import (
	"context"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/seed"
	"github.com/squadran/buildforge/internal/store"
)

// PostRepository handles store operations for posts.
type PostRepository struct {
	col *store.Collection[models.Post]
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(s store.Store) *PostRepository {
	return &PostRepository{
		col: store.NewCollection(s, store.CollectionPosts, seed.Posts),
	}
}

// All returns every post, head of the slice being the most recently
// created.
func (r *PostRepository) All(ctx context.Context) ([]models.Post, error) {
	return r.col.All(ctx)
}

// Update runs a read-modify-write cycle over the posts collection.
func (r *PostRepository) Update(ctx context.Context, fn func([]models.Post) ([]models.Post, error)) ([]models.Post, error) {
	return r.col.Update(ctx, fn)
}

// FindByID returns the post with the given id, or nil if absent.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	posts, err := r.col.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, nil
}
