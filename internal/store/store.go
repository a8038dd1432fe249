// Package store implements the entity store: named collections of opaque
// JSON documents with a get-all / replace-all contract, behind
// interchangeable providers (memory, file, Postgres, Redis).
package store

import (
	"context"
	"encoding/json"
)

// Stable collection keys.
const (
	CollectionInstitutions = "institutions"
	CollectionUsers        = "users"
	CollectionPosts        = "posts"
	CollectionMessages     = "messages"
	CollectionRequests     = "onboarding-requests"
)

// Store is the persistence provider contract. Load returns nil (not an
// empty slice) for a collection that has never been written, so callers
// can tell "absent" from "stored empty" and apply seed data.
type Store interface {
	Load(ctx context.Context, collection string) ([]json.RawMessage, error)
	Replace(ctx context.Context, collection string, docs []json.RawMessage) error
	Close() error
}
