// Package domain contains the core business entities and rules for the flight
// recommendation engine. These entities are provider-agnostic: every adapter
// normalizes its upstream payload into this shape before anything else in the
// pipeline touches it.
package domain

import (
	"fmt"
	"time"
)

// Source identifies the upstream provider a flight record originated from.
type Source string

// Known flight sources, ordered from most to least authoritative.
const (
	// SourceAmadeus is the primary booking API (OAuth client-credentials).
	SourceAmadeus Source = "amadeus"

	// SourceSkyScanner is the secondary marketplace API (key header,
	// multiple hosts tried in sequence).
	SourceSkyScanner Source = "skyscanner"

	// SourceKiwi is a registered placeholder that returns no results yet.
	SourceKiwi Source = "kiwi"

	// SourceFallback is the built-in offer generator, always enabled.
	SourceFallback Source = "fallback"
)

// sourcePriorities defines the total order used both for provider iteration
// and for deduplication tie-breaks. Lower value wins.
var sourcePriorities = map[Source]int{
	SourceAmadeus:    0,
	SourceSkyScanner: 1,
	SourceKiwi:       2,
	SourceFallback:   3,
}

// Priority returns the source's rank in the provider order. Unknown sources
// rank below every known one.
func (s Source) Priority() int {
	if p, ok := sourcePriorities[s]; ok {
		return p
	}
	return len(sourcePriorities)
}

// Flight is the canonical representation of a single flight offer.
type Flight struct {
	// ID is unique within a single search response.
	ID string `json:"id"`

	// Airline contains the operating airline's name and code.
	Airline AirlineInfo `json:"airline"`

	// FlightNumber is the airline's flight number (e.g., "AF-1234").
	FlightNumber string `json:"flightNumber"`

	// Departure and Arrival carry airport, city and local date/time.
	Departure FlightPoint `json:"departure"`
	Arrival   FlightPoint `json:"arrival"`

	// Duration is the total travel time including layovers.
	Duration DurationInfo `json:"duration"`

	// Price is the total offer price for all passengers.
	Price PriceInfo `json:"price"`

	// Stops is the number of intermediate stops (0 = direct).
	Stops int `json:"stops"`

	// Baggage describes the offer's baggage allowance.
	Baggage BaggageInfo `json:"baggage"`

	// Refundable and Changeable describe fare conditions.
	Refundable bool `json:"refundable"`
	Changeable bool `json:"changeable"`

	// CabinClass is the fare tier (economy, premium_economy, business, first).
	CabinClass string `json:"cabinClass"`

	// Source tags which provider produced this record.
	Source Source `json:"source"`

	// Score is the recommendation score in [0,1], set by the scoring stage.
	Score *float64 `json:"score,omitempty"`

	// Meta carries optional provider-side metadata.
	Meta *FlightMeta `json:"meta,omitempty"`
}

// AirlineInfo contains information about an operating airline.
type AirlineInfo struct {
	// Code is the IATA airline code (e.g., "AF").
	Code string `json:"code,omitempty"`

	// Name is the full airline name (e.g., "Air France").
	Name string `json:"name"`
}

// FlightPoint is one endpoint of a flight (departure or arrival).
type FlightPoint struct {
	// AirportCode is the IATA airport code (e.g., "CDG").
	AirportCode string `json:"airportCode"`

	// City is the city the airport serves, when known.
	City string `json:"city,omitempty"`

	// Time is the local time of day in HH:MM (24h) format.
	Time string `json:"time"`

	// Date is the local calendar date in YYYY-MM-DD format.
	Date string `json:"date"`
}

// MinutesOfDay returns the point's local time as minutes since midnight.
// A second return of false means the time string could not be parsed.
func (p FlightPoint) MinutesOfDay() (int, bool) {
	t, err := time.Parse("15:04", p.Time)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// DurationInfo contains total flight duration.
type DurationInfo struct {
	// TotalMinutes is the total travel time in minutes.
	TotalMinutes int `json:"totalMinutes"`

	// Formatted is a human-readable form (e.g., "7h 35m").
	Formatted string `json:"formatted"`
}

// PriceInfo contains pricing information for an offer.
type PriceInfo struct {
	// Amount is the numeric price; never negative.
	Amount float64 `json:"amount"`

	// Currency is the ISO 4217 currency code (e.g., "USD").
	Currency string `json:"currency"`
}

// BaggageInfo describes the baggage allowance attached to an offer.
type BaggageInfo struct {
	// CarryOn indicates whether a cabin bag is included.
	CarryOn bool `json:"carryOn"`

	// CheckedBags is the number of included checked bags.
	CheckedBags int `json:"checkedBags"`

	// CheckedBagCost is the price per additional checked bag, if published.
	CheckedBagCost *float64 `json:"checkedBagCost,omitempty"`

	// MaxCheckedBags is the upper limit on checked bags, if published.
	MaxCheckedBags *int `json:"maxCheckedBags,omitempty"`
}

// FlightMeta carries optional provider-side metadata for a record.
type FlightMeta struct {
	// LastUpdated is when the provider last refreshed this offer.
	LastUpdated time.Time `json:"lastUpdated,omitempty"`

	// AvailableSeats is the provider's seat availability estimate.
	AvailableSeats *int `json:"availableSeats,omitempty"`
}

// IsDirect reports whether the flight has no intermediate stops.
func (f *Flight) IsDirect() bool {
	return f.Stops == 0
}

// DedupeKey is the grouping key used by merge: two records with the same
// flight number on the same departure date describe the same physical flight.
func (f *Flight) DedupeKey() string {
	return f.FlightNumber + "|" + f.Departure.Date
}

// NewDurationInfo builds a DurationInfo from total minutes, formatting the
// human-readable string as "Xh Ym".
func NewDurationInfo(totalMinutes int) DurationInfo {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	var formatted string
	switch {
	case hours > 0 && mins > 0:
		formatted = fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		formatted = fmt.Sprintf("%dh", hours)
	default:
		formatted = fmt.Sprintf("%dm", mins)
	}

	return DurationInfo{
		TotalMinutes: totalMinutes,
		Formatted:    formatted,
	}
}

// TimeOfDay buckets a local time into morning, afternoon or evening.
type TimeOfDay string

// Time-of-day buckets used by preferences and scoring.
const (
	TimeMorning   TimeOfDay = "morning"   // before 12:00
	TimeAfternoon TimeOfDay = "afternoon" // 12:00 - 17:59
	TimeEvening   TimeOfDay = "evening"   // 18:00 onwards
)

// BucketOf returns the bucket a minutes-of-day value falls into.
func BucketOf(minutesOfDay int) TimeOfDay {
	switch {
	case minutesOfDay < 12*60:
		return TimeMorning
	case minutesOfDay < 18*60:
		return TimeAfternoon
	default:
		return TimeEvening
	}
}
