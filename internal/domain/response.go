package domain

// SearchResponse is the aggregated, ranked result of one orchestrated search.
// It is always structurally complete: empty slices and nil slots rather than
// missing fields.
type SearchResponse struct {
	// Success is false only for validation failures and catastrophic
	// aggregation faults; provider failures alone never clear it.
	Success bool `json:"success"`

	// Flights is the final filtered, scored and sorted list.
	Flights []Flight `json:"flights"`

	// TotalResults is len(Flights).
	TotalResults int `json:"totalResults"`

	// SearchID uniquely identifies this search execution.
	SearchID string `json:"searchId"`

	// SearchTimeMs is the total elapsed search time in milliseconds.
	SearchTimeMs int64 `json:"searchTimeMs"`

	// AppliedFilters echoes the filters that were actually applied.
	AppliedFilters *Filters `json:"appliedFilters,omitempty"`

	// Recommendations holds the named best-of slots.
	Recommendations Recommendations `json:"recommendations"`

	// FallbackUsed is true when only the generator produced results.
	FallbackUsed   bool   `json:"fallbackUsed"`
	FallbackReason string `json:"fallbackReason,omitempty"`

	// CacheHit is true when the flight list came from the result cache.
	CacheHit bool `json:"cacheHit"`

	// Error carries the failure message when Success is false.
	Error string `json:"error,omitempty"`
}

// Recommendations bundles the named recommendation slots. Every slot is nil
// or empty when the flight list is empty; selection never errors.
type Recommendations struct {
	// BestPrice is the cheapest flight.
	BestPrice *Flight `json:"bestPrice,omitempty"`

	// BestValue minimizes price per minute of travel.
	BestValue *Flight `json:"bestValue,omitempty"`

	// Fastest has the shortest total duration.
	Fastest *Flight `json:"fastest,omitempty"`

	// MostConvenient prefers direct flights departing 08:00-18:00.
	MostConvenient *Flight `json:"mostConvenient,omitempty"`

	// TopRated holds up to 5 flights by score descending.
	TopRated []Flight `json:"topRated"`

	// Personalized holds up to 10 flights by score descending.
	Personalized []Flight `json:"personalized"`
}

// AdapterResult is the ephemeral outcome of a single provider query within
// one orchestrated search. It is never persisted.
type AdapterResult struct {
	// Source identifies the provider.
	Source Source

	// Flights are the normalized records the adapter produced.
	Flights []Flight

	// Err is set when the adapter failed.
	Err error

	// DurationMs is how long the adapter call took.
	DurationMs int64
}

// IsSuccess reports whether the adapter call succeeded.
func (r *AdapterResult) IsSuccess() bool {
	return r.Err == nil
}
