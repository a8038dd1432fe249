package repositories

import (
	"context"

	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/store"
)

// MessageRepository handles store operations for direct messages.
type MessageRepository struct {
	col *store.Collection[models.Message]
}

// NewMessageRepository creates a new MessageRepository. Messages start
// empty; there is no seed set.
func NewMessageRepository(s store.Store) *MessageRepository {
	return &MessageRepository{
		col: store.NewCollection[models.Message](s, store.CollectionMessages, nil),
	}
}

// All returns every message.
func (r *MessageRepository) All(ctx context.Context) ([]models.Message, error) {
	return r.col.All(ctx)
}

// Update runs a read-modify-write cycle over the messages collection.
func (r *MessageRepository) Update(ctx context.Context, fn func([]models.Message) ([]models.Message, error)) ([]models.Message, error) {
	return r.col.Update(ctx, fn)
}
