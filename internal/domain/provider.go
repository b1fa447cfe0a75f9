package domain

import (
	"context"
	"sort"
)

//go:generate mockgen -source=provider.go -destination=provider_mock.go -package=domain

// FlightProvider is the contract every upstream adapter implements. An
// adapter translates the canonical request into a provider-specific call and
// translates the provider's response back into canonical flight records.
//
// Search returns a ProviderError on failure; an empty slice with a nil error
// means the provider simply found nothing, which is not a failure.
type FlightProvider interface {
	// Name returns the provider's source tag.
	Name() Source

	// Search queries the provider for flights matching the request.
	Search(ctx context.Context, req SearchRequest) ([]Flight, error)
}

// ProviderRegistry holds the enabled providers in source-priority order.
// The same order serves as the deduplication tie-break, so it is defined
// once (Source.Priority) and reused.
type ProviderRegistry struct {
	providers map[Source]FlightProvider
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[Source]FlightProvider),
	}
}

// Register adds a provider, replacing any existing provider with the same
// source. Nil providers are ignored.
func (r *ProviderRegistry) Register(p FlightProvider) {
	if p == nil {
		return
	}
	r.providers[p.Name()] = p
}

// Get returns the provider for the given source, or nil.
func (r *ProviderRegistry) Get(source Source) FlightProvider {
	return r.providers[source]
}

// All returns the registered providers ordered by source priority.
func (r *ProviderRegistry) All() []FlightProvider {
	result := make([]FlightProvider, 0, len(r.providers))
	for _, p := range r.providers {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name().Priority() < result[j].Name().Priority()
	})
	return result
}

// Sources returns the registered source tags in priority order.
func (r *ProviderRegistry) Sources() []Source {
	all := r.All()
	result := make([]Source, len(all))
	for i, p := range all {
		result[i] = p.Name()
	}
	return result
}

// Len returns the number of registered providers.
func (r *ProviderRegistry) Len() int {
	return len(r.providers)
}
