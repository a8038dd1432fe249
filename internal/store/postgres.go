package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps every collection as a single JSONB array in a
// two-column table. The store contract is get-all/replace-all, so one row
// per collection is the whole schema.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to Postgres and ensures the collections table
// exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			docs JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create collections table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Load returns the stored documents, or nil if the collection row does
// not exist yet.
func (s *PostgresStore) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT docs FROM collections WHERE name = $1`, collection,
	).Scan(&data)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load collection %s: %w", collection, err)
	}

	docs := []json.RawMessage{}
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %w", collection, err)
	}
	return docs, nil
}

// Replace upserts the full document set for the collection.
func (s *PostgresStore) Replace(ctx context.Context, collection string, docs []json.RawMessage) error {
	if docs == nil {
		docs = []json.RawMessage{}
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", collection, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO collections (name, docs, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET docs = EXCLUDED.docs, updated_at = now()
	`, collection, data)
	if err != nil {
		return fmt.Errorf("failed to replace collection %s: %w", collection, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
