// Package cache stores deduplicated flight lists keyed by a search
// signature. A cached list is raw pipeline input: filters, scores and
// recommendations are always recomputed per call.
package cache

import (
	"context"
	"time"

	"github.com/wanderplan/flight-engine/internal/domain"
)

// DefaultTTL is how long a cached search result stays live.
const DefaultTTL = 5 * time.Minute

// Cache maps a search signature to a previously merged flight list.
type Cache interface {
	// Get returns the cached flights for the signature, if a live entry
	// exists.
	Get(ctx context.Context, signature string) ([]domain.Flight, bool)

	// Set stores the flights under the signature. Callers must not cache
	// empty or failed aggregate results.
	Set(ctx context.Context, signature string, flights []domain.Flight) error

	// Close releases any resources held by the cache.
	Close() error
}

// NoOp is a Cache that stores nothing. Used when caching is disabled.
type NoOp struct{}

// NewNoOp creates a disabled cache.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Get always misses.
func (*NoOp) Get(ctx context.Context, signature string) ([]domain.Flight, bool) {
	return nil, false
}

// Set discards the flights.
func (*NoOp) Set(ctx context.Context, signature string, flights []domain.Flight) error {
	return nil
}

// Close is a no-op.
func (*NoOp) Close() error {
	return nil
}
