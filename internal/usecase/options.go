// Package usecase contains the search orchestration and recommendation logic.
// It fans out to providers with the scatter-gather pattern, merges and
// deduplicates their results, and drives the filter/score/rank pipeline.
package usecase

import "github.com/wanderplan/flight-engine/internal/domain"

// SearchOptions carries per-call options that are not part of the search
// request itself.
type SearchOptions struct {
	// SortBy selects the ordering of the final flight list.
	SortBy domain.SortOption
}

// DefaultSearchOptions returns options with the recommended ordering.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		SortBy: domain.SortRecommended,
	}
}
