package domain

import "strings"

// Filters defines optional hard constraints applied to merged flight results.
// All fields are optional; an omitted constraint is always satisfied.
type Filters struct {
	// MinPrice and MaxPrice bound the offer price (inclusive).
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// MaxStops excludes flights with more stops than this value.
	MaxStops *int `json:"maxStops,omitempty"`

	// DirectOnly keeps only zero-stop flights.
	DirectOnly bool `json:"directOnly,omitempty"`

	// Airlines keeps only flights whose airline name contains one of these
	// values (case-insensitive). ExcludeAirlines removes matches instead.
	Airlines        []string `json:"airlines,omitempty"`
	ExcludeAirlines []string `json:"excludeAirlines,omitempty"`

	// DepartureWindow and ArrivalWindow bound the local time of day.
	DepartureWindow *TimeWindow `json:"departureWindow,omitempty"`
	ArrivalWindow   *TimeWindow `json:"arrivalWindow,omitempty"`

	// MinDurationMinutes and MaxDurationMinutes bound total travel time.
	MinDurationMinutes *int `json:"minDurationMinutes,omitempty"`
	MaxDurationMinutes *int `json:"maxDurationMinutes,omitempty"`

	// Refundable and Changeable require the fare condition to match exactly.
	Refundable *bool `json:"refundable,omitempty"`
	Changeable *bool `json:"changeable,omitempty"`
}

// TimeWindow is a local time-of-day window in HH:MM (24h) format, inclusive
// on both ends.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether a point's local time falls inside the window.
// Unparseable times fail the check rather than silently passing.
func (w *TimeWindow) Contains(p FlightPoint) bool {
	if w == nil {
		return true
	}

	minutes, ok := p.MinutesOfDay()
	if !ok {
		return false
	}

	start, ok := parseClock(w.Start)
	if !ok {
		return true
	}
	end, ok := parseClock(w.End)
	if !ok {
		return true
	}

	return minutes >= start && minutes <= end
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	return FlightPoint{Time: s}.MinutesOfDay()
}

// Matches reports whether a flight satisfies every supplied constraint.
func (f *Filters) Matches(flight Flight) bool {
	if f == nil {
		return true
	}

	if f.MinPrice != nil && flight.Price.Amount < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && flight.Price.Amount > *f.MaxPrice {
		return false
	}

	if f.MaxStops != nil && flight.Stops > *f.MaxStops {
		return false
	}
	if f.DirectOnly && flight.Stops != 0 {
		return false
	}

	if len(f.Airlines) > 0 && !airlineNameMatches(flight.Airline.Name, f.Airlines) {
		return false
	}
	if len(f.ExcludeAirlines) > 0 && airlineNameMatches(flight.Airline.Name, f.ExcludeAirlines) {
		return false
	}

	if !f.DepartureWindow.Contains(flight.Departure) {
		return false
	}
	if !f.ArrivalWindow.Contains(flight.Arrival) {
		return false
	}

	if f.MinDurationMinutes != nil && flight.Duration.TotalMinutes < *f.MinDurationMinutes {
		return false
	}
	if f.MaxDurationMinutes != nil && flight.Duration.TotalMinutes > *f.MaxDurationMinutes {
		return false
	}

	if f.Refundable != nil && flight.Refundable != *f.Refundable {
		return false
	}
	if f.Changeable != nil && flight.Changeable != *f.Changeable {
		return false
	}

	return true
}

// airlineNameMatches reports whether the airline name contains any of the
// given values, case-insensitively.
func airlineNameMatches(name string, values []string) bool {
	lower := strings.ToLower(name)
	for _, v := range values {
		if v == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(v)) {
			return true
		}
	}
	return false
}

// SortOption defines the available sort keys for flight results.
type SortOption string

// Available sort options.
const (
	SortPriceAsc      SortOption = "price_asc"
	SortPriceDesc     SortOption = "price_desc"
	SortDurationAsc   SortOption = "duration_asc"
	SortDurationDesc  SortOption = "duration_desc"
	SortDepartureAsc  SortOption = "departure_asc"
	SortDepartureDesc SortOption = "departure_desc"
	SortStopsAsc      SortOption = "stops_asc"
	SortStopsDesc     SortOption = "stops_desc"
	SortScore         SortOption = "score"

	// SortRecommended is an alias for score descending.
	SortRecommended SortOption = "recommended"
)

// IsValid checks if the sort option is a known value.
func (s SortOption) IsValid() bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortDurationAsc, SortDurationDesc,
		SortDepartureAsc, SortDepartureDesc, SortStopsAsc, SortStopsDesc,
		SortScore, SortRecommended:
		return true
	default:
		return false
	}
}

// ParseSortOption converts a string to a SortOption, defaulting to
// SortRecommended for empty or unknown input.
func ParseSortOption(s string) SortOption {
	option := SortOption(s)
	if option.IsValid() {
		return option
	}
	return SortRecommended
}
