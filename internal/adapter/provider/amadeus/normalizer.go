package amadeus

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wanderplan/flight-engine/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// normalize converts the flight-offers payload into canonical flight records.
// Offers that cannot be mapped are skipped rather than failing the batch.
func normalize(payload offersResponse, now time.Time) []domain.Flight {
	result := make([]domain.Flight, 0, len(payload.Data))
	for _, o := range payload.Data {
		flight, err := normalizeOffer(o, payload.Dictionaries.Carriers, now)
		if err != nil {
			continue
		}
		result = append(result, flight)
	}
	return result
}

// normalizeOffer maps one offer. The first segment supplies the departure,
// the last segment the arrival, and the itinerary-level duration (or the sum
// of segment durations when it is absent) the total travel time.
func normalizeOffer(o offer, carriers map[string]string, now time.Time) (domain.Flight, error) {
	if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
		return domain.Flight{}, fmt.Errorf("offer %s has no segments", o.ID)
	}

	itin := o.Itineraries[0]
	first := itin.Segments[0]
	last := itin.Segments[len(itin.Segments)-1]

	depDate, depTime, err := splitLocalDateTime(first.Departure.At)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("offer %s departure: %w", o.ID, err)
	}
	arrDate, arrTime, err := splitLocalDateTime(last.Arrival.At)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("offer %s arrival: %w", o.ID, err)
	}

	minutes, ok := parseISODuration(itin.Duration)
	if !ok {
		minutes = 0
		for _, s := range itin.Segments {
			m, ok := parseISODuration(s.Duration)
			if !ok {
				return domain.Flight{}, fmt.Errorf("offer %s has unparseable durations", o.ID)
			}
			minutes += m
		}
	}

	if minutes <= 0 {
		return domain.Flight{}, fmt.Errorf("offer %s has non-positive duration %d", o.ID, minutes)
	}

	amount, err := strconv.ParseFloat(o.Price.GrandTotal, 64)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("offer %s price %q: %w", o.ID, o.Price.GrandTotal, err)
	}
	if amount < 0 {
		return domain.Flight{}, fmt.Errorf("offer %s has negative price %f", o.ID, amount)
	}

	cabin, bags := fareAttributes(o.TravelerPricings)

	seats := o.NumberOfBookableSeats
	flight := domain.Flight{
		ID:           "amadeus-" + o.ID,
		Airline:      airlineInfo(first.CarrierCode, carriers),
		FlightNumber: first.CarrierCode + "-" + first.Number,
		Departure: domain.FlightPoint{
			AirportCode: first.Departure.IataCode,
			Time:        depTime,
			Date:        depDate,
		},
		Arrival: domain.FlightPoint{
			AirportCode: last.Arrival.IataCode,
			Time:        arrTime,
			Date:        arrDate,
		},
		Duration: domain.NewDurationInfo(minutes),
		Price: domain.PriceInfo{
			Amount:   amount,
			Currency: o.Price.Currency,
		},
		Stops: len(itin.Segments) - 1,
		Baggage: domain.BaggageInfo{
			CarryOn:     true,
			CheckedBags: bags,
		},
		CabinClass: cabin,
		Source:     domain.SourceAmadeus,
		Meta: &domain.FlightMeta{
			LastUpdated:    now,
			AvailableSeats: &seats,
		},
	}
	return flight, nil
}

// airlineInfo resolves the carrier name from the response dictionary,
// falling back to the code itself.
func airlineInfo(code string, carriers map[string]string) domain.AirlineInfo {
	name := code
	if full, ok := carriers[code]; ok && full != "" {
		// Dictionary names arrive upper-cased ("AIR FRANCE").
		name = titleCaser.String(strings.ToLower(full))
	}
	return domain.AirlineInfo{Code: code, Name: name}
}

// fareAttributes extracts the cabin class and checked-bag allowance from the
// first traveler's first fare segment.
func fareAttributes(pricings []travelerPricing) (cabin string, checkedBags int) {
	cabin = "economy"
	if len(pricings) == 0 || len(pricings[0].FareDetailsBySegment) == 0 {
		return cabin, 0
	}

	fare := pricings[0].FareDetailsBySegment[0]
	switch strings.ToUpper(fare.Cabin) {
	case "PREMIUM_ECONOMY":
		cabin = "premium_economy"
	case "BUSINESS":
		cabin = "business"
	case "FIRST":
		cabin = "first"
	case "ECONOMY", "":
		cabin = "economy"
	default:
		cabin = strings.ToLower(fare.Cabin)
	}

	if fare.IncludedCheckedBags != nil {
		checkedBags = fare.IncludedCheckedBags.Quantity
	}
	return cabin, checkedBags
}

// splitLocalDateTime splits "2026-10-01T09:15:00" into its local date and
// HH:MM parts without applying any timezone conversion.
func splitLocalDateTime(at string) (date, hhmm string, err error) {
	if _, parseErr := time.Parse("2006-01-02T15:04:05", at); parseErr != nil {
		return "", "", fmt.Errorf("unparseable local datetime %q", at)
	}
	return at[:10], at[11:16], nil
}

// parseISODuration parses the subset of ISO 8601 durations the API emits
// ("PT8H20M", "PT45M", "PT2H") into minutes.
func parseISODuration(d string) (int, bool) {
	if !strings.HasPrefix(d, "PT") || len(d) == 2 {
		return 0, false
	}

	rest := d[2:]
	total := 0

	if idx := strings.IndexByte(rest, 'H'); idx >= 0 {
		hours, err := strconv.Atoi(rest[:idx])
		if err != nil {
			return 0, false
		}
		total += hours * 60
		rest = rest[idx+1:]
	}

	if idx := strings.IndexByte(rest, 'M'); idx >= 0 {
		minutes, err := strconv.Atoi(rest[:idx])
		if err != nil {
			return 0, false
		}
		total += minutes
		rest = rest[idx+1:]
	}

	if rest != "" {
		return 0, false
	}
	return total, true
}
