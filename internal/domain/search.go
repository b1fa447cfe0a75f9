package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SearchRequest defines the parameters for a flight search. It is treated as
// immutable once handed to the orchestrator.
type SearchRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK").
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "CDG").
	Destination string `json:"destination"`

	// DepartureDate is the outbound date in YYYY-MM-DD format.
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the optional inbound date in YYYY-MM-DD format.
	ReturnDate *string `json:"returnDate,omitempty"`

	// Passenger counts. Adults must be at least 1.
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`

	// CabinClass is the requested fare tier (default: economy).
	CabinClass string `json:"cabinClass,omitempty"`

	// Currency is the ISO 4217 code results should be priced in (default: USD).
	Currency string `json:"currency,omitempty"`

	// Filters are optional hard constraints applied after merging.
	Filters *Filters `json:"filters,omitempty"`

	// Preferences steer scoring and recommendation selection.
	Preferences *Preferences `json:"preferences,omitempty"`
}

var (
	airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)
	dateRegex        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// validCabinClasses defines the allowed fare tiers.
var validCabinClasses = map[string]bool{
	"economy":         true,
	"premium_economy": true,
	"business":        true,
	"first":           true,
}

// Validate checks the request before any provider is contacted.
// The first violation is returned as a *ValidationError.
func (r *SearchRequest) Validate() error {
	if r.Origin == "" {
		return NewValidationError("origin", "origin is required")
	}
	if !airportCodeRegex.MatchString(r.Origin) {
		return NewValidationError("origin", fmt.Sprintf("origin must be a 3-letter IATA code, got %q", r.Origin))
	}

	if r.Destination == "" {
		return NewValidationError("destination", "destination is required")
	}
	if !airportCodeRegex.MatchString(r.Destination) {
		return NewValidationError("destination", fmt.Sprintf("destination must be a 3-letter IATA code, got %q", r.Destination))
	}

	if r.Origin == r.Destination {
		return NewValidationError("destination", "origin and destination must be different")
	}

	if r.DepartureDate == "" {
		return NewValidationError("departureDate", "departureDate is required")
	}
	if !dateRegex.MatchString(r.DepartureDate) {
		return NewValidationError("departureDate", "departureDate must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("2006-01-02", r.DepartureDate); err != nil {
		return NewValidationError("departureDate", fmt.Sprintf("departureDate is not a valid date: %s", r.DepartureDate))
	}

	if r.ReturnDate != nil {
		if !dateRegex.MatchString(*r.ReturnDate) {
			return NewValidationError("returnDate", "returnDate must be in YYYY-MM-DD format")
		}
		if _, err := time.Parse("2006-01-02", *r.ReturnDate); err != nil {
			return NewValidationError("returnDate", fmt.Sprintf("returnDate is not a valid date: %s", *r.ReturnDate))
		}
	}

	if r.Adults < 1 {
		return NewValidationError("adults", "at least 1 adult passenger is required")
	}
	if r.Children < 0 {
		return NewValidationError("children", "children cannot be negative")
	}
	if r.Infants < 0 {
		return NewValidationError("infants", "infants cannot be negative")
	}

	if r.CabinClass != "" && !validCabinClasses[r.CabinClass] {
		return NewValidationError("cabinClass",
			fmt.Sprintf("cabinClass must be one of: economy, premium_economy, business, first; got %q", r.CabinClass))
	}

	return nil
}

// SetDefaults applies default values to empty optional fields.
func (r *SearchRequest) SetDefaults() {
	if r.CabinClass == "" {
		r.CabinClass = "economy"
	}
	if r.Currency == "" {
		r.Currency = "USD"
	}
}

// Signature derives the cache key for this request. Only route, dates,
// passenger counts, cabin class and currency participate: filters and
// preferences are applied per call on top of the cached flight list.
func (r *SearchRequest) Signature() string {
	returnDate := ""
	if r.ReturnDate != nil {
		returnDate = *r.ReturnDate
	}

	raw := strings.Join([]string{
		strings.ToUpper(r.Origin),
		strings.ToUpper(r.Destination),
		r.DepartureDate,
		returnDate,
		fmt.Sprintf("%d-%d-%d", r.Adults, r.Children, r.Infants),
		r.CabinClass,
		r.Currency,
	}, "|")

	sum := sha256.Sum256([]byte(raw))
	return "search:" + hex.EncodeToString(sum[:])
}

// TotalPassengers returns the number of seats the request needs.
func (r *SearchRequest) TotalPassengers() int {
	return r.Adults + r.Children + r.Infants
}
