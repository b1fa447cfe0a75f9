// Package fallback generates plausible flight offers locally. The generator
// is always registered so a search can degrade gracefully when every real
// provider fails or finds nothing. Offers are deterministic for a given
// request: the jitter source is seeded from the route and date.
package fallback

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/wanderplan/flight-engine/internal/domain"
	"github.com/wanderplan/flight-engine/internal/infrastructure/timeutil"
)

// offersPerSearch is how many offers one search generates.
const offersPerSearch = 5

// jitterSpread is the maximum relative price deviation from the base price.
const jitterSpread = 0.15

// departureStartMinutes is the first generated departure (06:30 local).
const departureStartMinutes = 6*60 + 30

// departureStaggerMinutes separates consecutive generated departures.
const departureStaggerMinutes = 195

// longHaulMinutes is the duration above which some generated offers get a
// connection.
const longHaulMinutes = 600

// generatedAirlines is the fixed carrier rotation for generated offers.
var generatedAirlines = []domain.AirlineInfo{
	{Code: "DL", Name: "Delta Air Lines"},
	{Code: "AF", Name: "Air France"},
	{Code: "BA", Name: "British Airways"},
	{Code: "LH", Name: "Lufthansa"},
	{Code: "UA", Name: "United Airlines"},
}

// Generator is the always-on synthetic provider.
type Generator struct {
	clock timeutil.Clock
}

// NewGenerator creates the generator. A nil clock uses the system clock.
func NewGenerator(clock timeutil.Clock) *Generator {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Generator{clock: clock}
}

// Name implements domain.FlightProvider.
func (g *Generator) Name() domain.Source {
	return domain.SourceFallback
}

// Search implements domain.FlightProvider. It never fails.
func (g *Generator) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Flight, error) {
	rng := rand.New(rand.NewSource(seedFor(req)))

	base := basePriceFor(req.Destination)
	style := req.Preferences.Style()
	duration := routeDurationFor(req.Origin, req.Destination)
	now := g.clock.Now()

	flights := make([]domain.Flight, 0, offersPerSearch)
	for i := 0; i < offersPerSearch; i++ {
		airline := generatedAirlines[i%len(generatedAirlines)]

		jitter := 1.0 + (rng.Float64()*2-1)*jitterSpread
		amount := round2(base * style.PriceMultiplier() * jitter)

		depMinutes := departureStartMinutes + i*departureStaggerMinutes
		stops := 0
		totalMinutes := duration
		if duration > longHaulMinutes && i%2 == 1 {
			stops = 1
			totalMinutes += 90 + rng.Intn(60)
		}

		arrDayOffset, arrMinutes := addMinutes(depMinutes, totalMinutes)
		flightNumber := fmt.Sprintf("%s-%d", airline.Code, 9000+rng.Intn(900))

		flights = append(flights, domain.Flight{
			ID:           fmt.Sprintf("fallback-%s-%s-%d", req.Origin, req.Destination, i+1),
			Airline:      airline,
			FlightNumber: flightNumber,
			Departure: domain.FlightPoint{
				AirportCode: req.Origin,
				Time:        formatMinutes(depMinutes),
				Date:        req.DepartureDate,
			},
			Arrival: domain.FlightPoint{
				AirportCode: req.Destination,
				Time:        formatMinutes(arrMinutes),
				Date:        addDays(req.DepartureDate, arrDayOffset),
			},
			Duration: domain.NewDurationInfo(totalMinutes),
			Price: domain.PriceInfo{
				Amount:   amount,
				Currency: req.Currency,
			},
			Stops: stops,
			Baggage: domain.BaggageInfo{
				CarryOn:     true,
				CheckedBags: 1,
			},
			Changeable: true,
			CabinClass: req.CabinClass,
			Source:     domain.SourceFallback,
			Meta: &domain.FlightMeta{
				LastUpdated: now,
			},
		})
	}

	return flights, nil
}

// seedFor derives a stable seed from the route and dates, so the same search
// always generates the same offers.
func seedFor(req domain.SearchRequest) int64 {
	h := fnv.New64a()
	h.Write([]byte(req.Origin))
	h.Write([]byte(req.Destination))
	h.Write([]byte(req.DepartureDate))
	if req.ReturnDate != nil {
		h.Write([]byte(*req.ReturnDate))
	}
	return int64(h.Sum64())
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// addMinutes advances a minutes-of-day value, reporting day rollovers.
func addMinutes(start, delta int) (days, minutes int) {
	total := start + delta
	return total / (24 * 60), total % (24 * 60)
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

var _ domain.FlightProvider = (*Generator)(nil)
