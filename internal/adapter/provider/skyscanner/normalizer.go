package skyscanner

import (
	"fmt"
	"time"

	"github.com/wanderplan/flight-engine/internal/domain"
)

// normalize converts marketplace itineraries into canonical flight records.
// Itineraries that cannot be mapped are skipped.
func normalize(payload searchResponse, cabinClass, currency string, now time.Time) []domain.Flight {
	result := make([]domain.Flight, 0, len(payload.Itineraries))
	for _, it := range payload.Itineraries {
		flight, err := normalizeItinerary(it, cabinClass, currency, now)
		if err != nil {
			continue
		}
		result = append(result, flight)
	}
	return result
}

func normalizeItinerary(it itinerary, cabinClass, currency string, now time.Time) (domain.Flight, error) {
	if len(it.Legs) == 0 {
		return domain.Flight{}, fmt.Errorf("itinerary %s has no legs", it.ID)
	}
	l := it.Legs[0]

	depDate, depTime, err := splitLocalDateTime(l.Departure)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("itinerary %s departure: %w", it.ID, err)
	}
	arrDate, arrTime, err := splitLocalDateTime(l.Arrival)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("itinerary %s arrival: %w", it.ID, err)
	}

	airline, flightNumber, err := marketingFlight(l)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("itinerary %s: %w", it.ID, err)
	}

	if l.DurationInMinutes <= 0 {
		return domain.Flight{}, fmt.Errorf("itinerary %s has non-positive duration %d", it.ID, l.DurationInMinutes)
	}
	if it.Price.Raw < 0 {
		return domain.Flight{}, fmt.Errorf("itinerary %s has negative price %f", it.ID, it.Price.Raw)
	}
	if l.StopCount < 0 {
		return domain.Flight{}, fmt.Errorf("itinerary %s has negative stop count %d", it.ID, l.StopCount)
	}

	return domain.Flight{
		ID:           "skyscanner-" + it.ID,
		Airline:      airline,
		FlightNumber: flightNumber,
		Departure: domain.FlightPoint{
			AirportCode: l.Origin.DisplayCode,
			City:        l.Origin.City,
			Time:        depTime,
			Date:        depDate,
		},
		Arrival: domain.FlightPoint{
			AirportCode: l.Destination.DisplayCode,
			City:        l.Destination.City,
			Time:        arrTime,
			Date:        arrDate,
		},
		Duration: domain.NewDurationInfo(l.DurationInMinutes),
		Price: domain.PriceInfo{
			Amount:   it.Price.Raw,
			Currency: currency,
		},
		Stops: l.StopCount,
		Baggage: domain.BaggageInfo{
			CarryOn: true,
		},
		Refundable: it.FarePolicy.IsCancellationAllowed,
		Changeable: it.FarePolicy.IsChangeAllowed,
		CabinClass: cabinClass,
		Source:     domain.SourceSkyScanner,
		Meta: &domain.FlightMeta{
			LastUpdated: now,
		},
	}, nil
}

// marketingFlight derives the airline and canonical flight number from the
// leg's first marketing segment.
func marketingFlight(l leg) (domain.AirlineInfo, string, error) {
	if len(l.Segments) == 0 || len(l.Carriers.Marketing) == 0 {
		return domain.AirlineInfo{}, "", fmt.Errorf("no marketing carrier")
	}

	first := l.Carriers.Marketing[0]
	seg := l.Segments[0]

	code := seg.MarketingCarrier.AlternateID
	if code == "" {
		code = first.AlternateID
	}
	if code == "" || seg.FlightNumber == "" {
		return domain.AirlineInfo{}, "", fmt.Errorf("incomplete segment identifiers")
	}

	name := first.Name
	if seg.MarketingCarrier.Name != "" {
		name = seg.MarketingCarrier.Name
	}

	return domain.AirlineInfo{Code: code, Name: name}, code + "-" + seg.FlightNumber, nil
}

// splitLocalDateTime splits "2026-10-01T09:15:00" into its local date and
// HH:MM parts.
func splitLocalDateTime(at string) (date, hhmm string, err error) {
	if _, parseErr := time.Parse("2006-01-02T15:04:05", at); parseErr != nil {
		return "", "", fmt.Errorf("unparseable local datetime %q", at)
	}
	return at[:10], at[11:16], nil
}
