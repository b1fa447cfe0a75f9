package cache

import (
	"context"
	"sync"
	"time"

	"github.com/wanderplan/flight-engine/internal/domain"
	"github.com/wanderplan/flight-engine/internal/infrastructure/timeutil"
)

// Memory is an in-process Cache with lazy, read-time expiry. It is not
// shared across process instances; deployments that need a shared cache use
// the Redis backend instead.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	clock   timeutil.Clock
}

type memoryEntry struct {
	flights   []domain.Flight
	expiresAt time.Time
}

// NewMemory creates an in-memory cache with the given TTL. A nil clock uses
// the system clock; a non-positive TTL falls back to DefaultTTL.
func NewMemory(ttl time.Duration, clock timeutil.Clock) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the cached flights if the entry is still live. Expired entries
// are removed on read.
func (m *Memory) Get(ctx context.Context, signature string) ([]domain.Flight, bool) {
	m.mu.RLock()
	entry, ok := m.entries[signature]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if m.clock.Now().After(entry.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the entry.
		if cur, ok := m.entries[signature]; ok && m.clock.Now().After(cur.expiresAt) {
			delete(m.entries, signature)
		}
		m.mu.Unlock()
		return nil, false
	}

	// Copy so callers cannot mutate the cached slice.
	flights := make([]domain.Flight, len(entry.flights))
	copy(flights, entry.flights)
	return flights, true
}

// Set stores the flights under the signature with a fresh TTL. Empty lists
// are rejected silently: the orchestrator never caches empty results.
func (m *Memory) Set(ctx context.Context, signature string, flights []domain.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	stored := make([]domain.Flight, len(flights))
	copy(stored, flights)

	m.mu.Lock()
	m.entries[signature] = memoryEntry{
		flights:   stored,
		expiresAt: m.clock.Now().Add(m.ttl),
	}
	m.mu.Unlock()
	return nil
}

// Close clears the cache.
func (m *Memory) Close() error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

// Len returns the number of entries currently stored, including any that
// have expired but not yet been read.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
