package usecase

import (
	"strings"

	"github.com/wanderplan/flight-engine/internal/domain"
)

// Scoring weights. They sum to 1.0 so the weighted sum stays in [0,1] before
// the travel-style modifier.
const (
	weightPrice       = 0.35
	weightDuration    = 0.25
	weightConvenience = 0.20
	weightDirect      = 0.10
	weightTimeOfDay   = 0.05
	weightAirlineTier = 0.05
)

// neutralScore is returned when a score cannot be computed.
const neutralScore = 0.5

// directDurationBonus rewards zero-stop flights in the duration component.
const directDurationBonus = 0.2

// premiumAirlines are carriers a luxury traveler recognizes as full-service.
var premiumAirlines = []string{
	"emirates",
	"qatar airways",
	"singapore airlines",
	"cathay pacific",
	"etihad",
	"lufthansa",
	"air france",
	"british airways",
	"swiss",
	"ana",
	"japan airlines",
}

// budgetAirlines are low-cost carriers a budget traveler targets.
var budgetAirlines = []string{
	"ryanair",
	"easyjet",
	"wizz air",
	"vueling",
	"spirit",
	"frontier",
	"norwegian",
	"airasia",
	"scoot",
}

// ScoreFlights computes the recommendation score for every flight and returns
// a new slice with scores attached. The input is not mutated. Scoring the
// same flight with the same preferences always yields the same value.
func ScoreFlights(flights []domain.Flight, prefs *domain.Preferences, filters *domain.Filters) []domain.Flight {
	result := make([]domain.Flight, len(flights))
	for i, f := range flights {
		result[i] = f
		score := ScoreFlight(f, prefs, filters)
		result[i].Score = &score
	}
	return result
}

// ScoreFlight computes a single flight's score in [0,1] as a weighted sum of
// six sub-scores. Any internal fault degrades to a neutral 0.5 instead of
// propagating.
func ScoreFlight(flight domain.Flight, prefs *domain.Preferences, filters *domain.Filters) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			score = neutralScore
		}
	}()

	style := prefs.Style()

	weighted := weightPrice*priceScore(flight, filters, style) +
		weightDuration*durationScore(flight, filters) +
		weightConvenience*convenienceScore(flight) +
		weightDirect*directScore(flight, prefs) +
		weightTimeOfDay*timeOfDayScore(flight, prefs) +
		weightAirlineTier*airlineTierScore(flight, style)

	return clamp01(weighted * style.ScoreModifier())
}

// priceScore rewards cheap flights relative to the traveler's price ceiling.
// Without an explicit max-price filter the ceiling is twice the flight's own
// price, which lands at a neutral 0.5 before the style multiplier.
func priceScore(flight domain.Flight, filters *domain.Filters, style domain.TravelStyle) float64 {
	effectiveMax := flight.Price.Amount * 2.0
	if filters != nil && filters.MaxPrice != nil && *filters.MaxPrice > 0 {
		effectiveMax = *filters.MaxPrice
	}
	if effectiveMax <= 0 {
		return neutralScore
	}

	raw := 1.0 - flight.Price.Amount/effectiveMax
	if raw < 0 {
		raw = 0
	}
	return clamp01(raw * style.PriceWeightMultiplier())
}

// durationScore rewards short flights, with a flat bonus for direct ones.
func durationScore(flight domain.Flight, filters *domain.Filters) float64 {
	effectiveMax := float64(flight.Duration.TotalMinutes) * 2.0
	if filters != nil && filters.MaxDurationMinutes != nil && *filters.MaxDurationMinutes > 0 {
		effectiveMax = float64(*filters.MaxDurationMinutes)
	}
	if effectiveMax <= 0 {
		return neutralScore
	}

	raw := 1.0 - float64(flight.Duration.TotalMinutes)/effectiveMax
	if raw < 0 {
		raw = 0
	}
	if flight.IsDirect() {
		raw += directDurationBonus
	}
	return clamp01(raw)
}

// convenienceScore starts at 0.5 and accumulates fare-condition bonuses.
func convenienceScore(flight domain.Flight) float64 {
	score := 0.5
	switch flight.Stops {
	case 0:
		score += 0.3
	case 1:
		score += 0.1
	}
	if flight.Refundable {
		score += 0.1
	}
	if flight.Changeable {
		score += 0.1
	}
	return clamp01(score)
}

// directScore is only opinionated when the traveler asked for direct flights.
func directScore(flight domain.Flight, prefs *domain.Preferences) float64 {
	if prefs == nil || !prefs.PreferDirect {
		return neutralScore
	}
	if flight.IsDirect() {
		return 1.0
	}
	return 0.2
}

// timeOfDayScore matches the departure bucket against the stated preference.
func timeOfDayScore(flight domain.Flight, prefs *domain.Preferences) float64 {
	if prefs == nil || prefs.PreferredTime == "" {
		return neutralScore
	}

	minutes, ok := flight.Departure.MinutesOfDay()
	if !ok {
		return neutralScore
	}
	if domain.BucketOf(minutes) == prefs.PreferredTime {
		return 1.0
	}
	return 0.3
}

// airlineTierScore rewards carriers that fit the traveler's style: premium
// carriers for luxury travelers, low-cost carriers for budget travelers.
func airlineTierScore(flight domain.Flight, style domain.TravelStyle) float64 {
	name := strings.ToLower(flight.Airline.Name)

	switch style {
	case domain.StyleLuxury:
		if containsAny(name, premiumAirlines) {
			return 1.0
		}
	case domain.StyleBudget:
		if containsAny(name, budgetAirlines) {
			return 1.0
		}
	}
	return 0.7
}

func containsAny(name string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(name, n) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
