// Package mock provides configurable test doubles for integration-style
// tests that need behavior the generated domain mocks do not cover, such as
// artificial delays and call counting across goroutines.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wanderplan/flight-engine/internal/domain"
)

// Provider is a configurable implementation of domain.FlightProvider. Its
// builder methods set up the response; Search applies the configured delay,
// respects context cancellation, and records every call.
type Provider struct {
	source  domain.Source
	flights []domain.Flight
	err     error
	delay   time.Duration

	mu        sync.Mutex
	callCount int
}

var _ domain.FlightProvider = (*Provider)(nil)

// NewProvider creates a provider double tagged with the given source.
func NewProvider(source domain.Source) *Provider {
	return &Provider{source: source}
}

// WithFlights configures the flights Search returns.
func (p *Provider) WithFlights(flights []domain.Flight) *Provider {
	p.flights = flights
	return p
}

// WithError configures Search to fail with the given error.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDelay makes Search wait before responding, for timeout tests.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name returns the configured source tag.
func (p *Provider) Name() domain.Source {
	return p.source
}

// Search returns the configured flights or error after the configured delay.
// Cancellation during the delay returns the context's error.
func (p *Provider) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Flight, error) {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.delay):
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.flights, nil
}

// CallCount returns how many times Search has been invoked.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// Reset clears the call counter.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
}

// sampleAirlines gives each source its own carrier so samples from two
// providers do not collide on the flightNumber+date dedupe key.
var sampleAirlines = map[domain.Source]domain.AirlineInfo{
	domain.SourceAmadeus:    {Code: "AF", Name: "Air France"},
	domain.SourceSkyScanner: {Code: "DL", Name: "Delta Air Lines"},
	domain.SourceKiwi:       {Code: "BA", Name: "British Airways"},
	domain.SourceFallback:   {Code: "UA", Name: "United Airlines"},
}

// SampleFlights returns count fully populated flights tagged with the given
// source, spaced two hours apart starting at 08:00.
func SampleFlights(source domain.Source, count int) []domain.Flight {
	airline, ok := sampleAirlines[source]
	if !ok {
		airline = domain.AirlineInfo{Code: "LH", Name: "Lufthansa"}
	}

	flights := make([]domain.Flight, count)
	for i := 0; i < count; i++ {
		departure := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC).Add(time.Duration(i*2) * time.Hour)
		arrival := departure.Add(7*time.Hour + 35*time.Minute)

		flights[i] = domain.Flight{
			ID:           fmt.Sprintf("%s-sample-%d", source, i+1),
			FlightNumber: fmt.Sprintf("%s-%d", airline.Code, 1000+i),
			Airline:      airline,
			Departure: domain.FlightPoint{
				AirportCode: "JFK",
				City:        "New York",
				Time:        departure.Format("15:04"),
				Date:        departure.Format("2006-01-02"),
			},
			Arrival: domain.FlightPoint{
				AirportCode: "CDG",
				City:        "Paris",
				Time:        arrival.Format("15:04"),
				Date:        arrival.Format("2006-01-02"),
			},
			Duration: domain.DurationInfo{
				TotalMinutes: 455,
				Formatted:    "7h 35m",
			},
			Price: domain.PriceInfo{
				Amount:   420.50 + float64(i)*25,
				Currency: "USD",
			},
			Stops: 0,
			Baggage: domain.BaggageInfo{
				CarryOn:     true,
				CheckedBags: 1,
			},
			CabinClass: "economy",
			Source:     source,
		}
	}
	return flights
}
