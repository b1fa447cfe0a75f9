package usecase

import "github.com/wanderplan/flight-engine/internal/domain"

// ApplyFilters returns the flights that satisfy every supplied constraint.
// A nil filter set passes everything through untouched.
//
// The predicates are a pure conjunction: removing a constraint can only grow
// or preserve the surviving set. The input slice is not mutated.
func ApplyFilters(flights []domain.Flight, filters *domain.Filters) []domain.Flight {
	if filters == nil {
		return flights
	}

	result := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if filters.Matches(f) {
			result = append(result, f)
		}
	}
	return result
}
