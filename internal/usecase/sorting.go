package usecase

import (
	"sort"

	"github.com/wanderplan/flight-engine/internal/domain"
)

// SortFlights orders flights by the given key. Sorting is stable so equal
// values keep a consistent relative order. The input slice is not mutated;
// an empty or unknown key falls back to score descending.
func SortFlights(flights []domain.Flight, sortBy domain.SortOption) []domain.Flight {
	if len(flights) <= 1 {
		return flights
	}

	result := make([]domain.Flight, len(flights))
	copy(result, flights)

	if !sortBy.IsValid() {
		sortBy = domain.SortRecommended
	}

	var less func(i, j int) bool
	switch sortBy {
	case domain.SortPriceAsc:
		less = func(i, j int) bool { return result[i].Price.Amount < result[j].Price.Amount }
	case domain.SortPriceDesc:
		less = func(i, j int) bool { return result[i].Price.Amount > result[j].Price.Amount }
	case domain.SortDurationAsc:
		less = func(i, j int) bool { return result[i].Duration.TotalMinutes < result[j].Duration.TotalMinutes }
	case domain.SortDurationDesc:
		less = func(i, j int) bool { return result[i].Duration.TotalMinutes > result[j].Duration.TotalMinutes }
	case domain.SortDepartureAsc:
		less = func(i, j int) bool { return departureKey(result[i]) < departureKey(result[j]) }
	case domain.SortDepartureDesc:
		less = func(i, j int) bool { return departureKey(result[i]) > departureKey(result[j]) }
	case domain.SortStopsAsc:
		less = func(i, j int) bool { return result[i].Stops < result[j].Stops }
	case domain.SortStopsDesc:
		less = func(i, j int) bool { return result[i].Stops > result[j].Stops }
	case domain.SortScore, domain.SortRecommended:
		less = func(i, j int) bool { return scoreOf(result[i]) > scoreOf(result[j]) }
	}

	sort.SliceStable(result, less)
	return result
}

// departureKey builds a sortable "date time" string for a flight.
func departureKey(f domain.Flight) string {
	return f.Departure.Date + " " + f.Departure.Time
}

// scoreOf treats an unscored flight as neutral.
func scoreOf(f domain.Flight) float64 {
	if f.Score == nil {
		return neutralScore
	}
	return *f.Score
}
