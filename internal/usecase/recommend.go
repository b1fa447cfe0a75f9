package usecase

import "github.com/wanderplan/flight-engine/internal/domain"

// Convenient departure window for the mostConvenient slot, minutes since
// midnight (08:00 - 18:00 local).
const (
	convenientWindowStart = 8 * 60
	convenientWindowEnd   = 18 * 60
)

// Slot sizes for the ranked recommendation lists.
const (
	topRatedCount     = 5
	personalizedCount = 10
)

// BuildRecommendations derives the named recommendation slots from an
// already-scored flight list. An empty input yields empty slots, never an
// error.
func BuildRecommendations(flights []domain.Flight) domain.Recommendations {
	recs := domain.Recommendations{
		TopRated:     []domain.Flight{},
		Personalized: []domain.Flight{},
	}
	if len(flights) == 0 {
		return recs
	}

	recs.BestPrice = pickMin(flights, func(f domain.Flight) float64 {
		return f.Price.Amount
	})
	recs.BestValue = pickMin(flights, func(f domain.Flight) float64 {
		return f.Price.Amount / float64(f.Duration.TotalMinutes)
	})
	recs.Fastest = pickMin(flights, func(f domain.Flight) float64 {
		return float64(f.Duration.TotalMinutes)
	})
	recs.MostConvenient = pickMostConvenient(flights)

	byScore := SortFlights(flights, domain.SortScore)
	recs.TopRated = firstN(byScore, topRatedCount)
	recs.Personalized = firstN(byScore, personalizedCount)

	return recs
}

// pickMin returns a copy of the flight minimizing the key. Ties keep the
// earlier flight in the list.
func pickMin(flights []domain.Flight, key func(domain.Flight) float64) *domain.Flight {
	best := flights[0]
	bestKey := key(best)
	for _, f := range flights[1:] {
		if k := key(f); k < bestKey {
			best, bestKey = f, k
		}
	}
	return &best
}

// pickMostConvenient prefers a direct flight departing inside the convenient
// window, then any direct flight, then the first flight in the list.
func pickMostConvenient(flights []domain.Flight) *domain.Flight {
	var firstDirect *domain.Flight

	for i := range flights {
		f := flights[i]
		if !f.IsDirect() {
			continue
		}
		if firstDirect == nil {
			c := f
			firstDirect = &c
		}
		if minutes, ok := f.Departure.MinutesOfDay(); ok &&
			minutes >= convenientWindowStart && minutes <= convenientWindowEnd {
			c := f
			return &c
		}
	}

	if firstDirect != nil {
		return firstDirect
	}

	c := flights[0]
	return &c
}

func firstN(flights []domain.Flight, n int) []domain.Flight {
	if len(flights) < n {
		n = len(flights)
	}
	result := make([]domain.Flight, n)
	copy(result, flights[:n])
	return result
}
