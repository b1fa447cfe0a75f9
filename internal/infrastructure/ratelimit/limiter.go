// Package ratelimit provides per-provider token-bucket rate limiting so that
// adapter fan-out cannot exceed an upstream API's request quota.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/wanderplan/flight-engine/internal/domain"
)

// Config holds the default per-provider limits.
type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultConfig allows 10 req/s with a burst of 20 per provider.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

// ProviderLimiter maintains one token bucket per provider source.
type ProviderLimiter struct {
	limiters map[domain.Source]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

// NewProviderLimiter creates a limiter with the given defaults.
func NewProviderLimiter(cfg Config) *ProviderLimiter {
	return &ProviderLimiter{
		limiters: make(map[domain.Source]*rate.Limiter),
		defaults: cfg,
	}
}

// limiterFor returns (creating if needed) the bucket for a source.
func (p *ProviderLimiter) limiterFor(source domain.Source) *rate.Limiter {
	p.mu.RLock()
	limiter, ok := p.limiters[source]
	p.mu.RUnlock()
	if ok {
		return limiter
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if limiter, ok = p.limiters[source]; ok {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(p.defaults.RequestsPerSecond), p.defaults.BurstSize)
	p.limiters[source] = limiter
	return limiter
}

// SetLimit overrides the bucket for one source.
func (p *ProviderLimiter) SetLimit(source domain.Source, rps float64, burst int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.limiters[source] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until the source's bucket permits a request or the context is
// done.
func (p *ProviderLimiter) Wait(ctx context.Context, source domain.Source) error {
	return p.limiterFor(source).Wait(ctx)
}

// Allow reports whether a request may proceed right now without waiting.
func (p *ProviderLimiter) Allow(source domain.Source) bool {
	return p.limiterFor(source).Allow()
}
