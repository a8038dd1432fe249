// Package idgen produces the identifiers and timestamps stamped onto
// entities at creation time. IDs are prefixed ULIDs, unique and
// lexicographically monotonic; timestamps are unix milliseconds.
package idgen

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator creates monotonically non-decreasing identifiers.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a Generator backed by crypto/rand entropy.
func New() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewID returns a new identifier of the form "<prefix>_<ulid>".
// Entity prefixes ("post", "founder", "m", ...) keep stored documents
// self-describing without carrying a type field.
func (g *Generator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), g.entropy)
	if err != nil {
		// Monotonic entropy overflow within a single millisecond; start
		// a fresh reader and retry once.
		g.entropy = ulid.Monotonic(rand.Reader, 0)
		id = ulid.MustNew(ulid.Timestamp(now), g.entropy)
	}
	return prefix + "_" + id.String()
}

// Now returns the current timestamp in unix milliseconds.
func (g *Generator) Now() int64 {
	return time.Now().UnixMilli()
}
