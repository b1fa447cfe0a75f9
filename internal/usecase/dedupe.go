package usecase

import "github.com/wanderplan/flight-engine/internal/domain"

// Deduplicate collapses records that describe the same physical flight
// (same flight number on the same departure date) into one. The survivor is
// chosen by source priority first, then by lower price, then by lexicographic
// ID, so the outcome does not depend on input order.
//
// Output preserves the input order of each surviving key's first occurrence.
// The input slice is not mutated.
func Deduplicate(flights []domain.Flight) []domain.Flight {
	if len(flights) <= 1 {
		return flights
	}

	winners := make(map[string]domain.Flight, len(flights))
	order := make([]string, 0, len(flights))

	for _, f := range flights {
		key := f.DedupeKey()
		current, seen := winners[key]
		if !seen {
			winners[key] = f
			order = append(order, key)
			continue
		}
		if beats(f, current) {
			winners[key] = f
		}
	}

	result := make([]domain.Flight, 0, len(order))
	for _, key := range order {
		result = append(result, winners[key])
	}
	return result
}

// beats reports whether challenger should replace incumbent for the same
// dedupe key.
func beats(challenger, incumbent domain.Flight) bool {
	cp, ip := challenger.Source.Priority(), incumbent.Source.Priority()
	if cp != ip {
		return cp < ip
	}
	if challenger.Price.Amount != incumbent.Price.Amount {
		return challenger.Price.Amount < incumbent.Price.Amount
	}
	return challenger.ID < incumbent.ID
}
