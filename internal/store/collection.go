package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/squadran/buildforge/internal/pkg/apperrors"
)

// Collection is a typed view over one named collection. It serializes
// read-modify-write cycles with a per-collection mutex, applies seed data
// when the underlying collection has never been written, and surfaces
// provider failures as ErrStorageUnavailable.
type Collection[T any] struct {
	store Store
	name  string
	seed  func() []T
	mu    sync.Mutex
}

// NewCollection creates a typed collection. seed may be nil for
// collections that start empty.
func NewCollection[T any](s Store, name string, seed func() []T) *Collection[T] {
	return &Collection[T]{store: s, name: name, seed: seed}
}

// Name returns the underlying collection key.
func (c *Collection[T]) Name() string {
	return c.name
}

// All returns every item in the collection.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// ReplaceAll overwrites the collection with the given items.
func (c *Collection[T]) ReplaceAll(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, items)
}

// Update runs a full read-modify-write cycle under the collection mutex:
// the canonical mutation primitive for every operation in the system.
// fn receives the current items and returns the replacement set.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	updated, err := fn(items)
	if err != nil {
		return nil, err
	}
	if err := c.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// load must be called with the mutex held.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	docs, err := c.store.Load(ctx, c.name)
	if err != nil {
		return nil, storageErr(c.name, "load", err)
	}

	// First access: persist the seed set so every provider converges on
	// the same initial state.
	if docs == nil {
		var items []T
		if c.seed != nil {
			items = c.seed()
		}
		if err := c.save(ctx, items); err != nil {
			return nil, err
		}
		return items, nil
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, storageErr(c.name, "decode", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// save must be called with the mutex held.
func (c *Collection[T]) save(ctx context.Context, items []T) error {
	docs := make([]json.RawMessage, 0, len(items))
	for i := range items {
		doc, err := json.Marshal(items[i])
		if err != nil {
			return storageErr(c.name, "encode", err)
		}
		docs = append(docs, doc)
	}
	if err := c.store.Replace(ctx, c.name, docs); err != nil {
		return storageErr(c.name, "replace", err)
	}
	return nil
}

func storageErr(collection, op string, err error) error {
	return &apperrors.CustomError{
		Err:     apperrors.ErrStorageUnavailable,
		Message: fmt.Sprintf("%s %s: %v", op, collection, err),
	}
}
