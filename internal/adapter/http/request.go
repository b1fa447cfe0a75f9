// Package http provides the HTTP handler layer for the flight search API.
// It handles request parsing, validation, response formatting, and error
// mapping.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SearchFlightsRequest is the request body for flight search.
type SearchFlightsRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK").
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "CDG").
	Destination string `json:"destination"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format.
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the optional return date in YYYY-MM-DD format.
	ReturnDate *string `json:"returnDate,omitempty"`

	// Adults is the number of adult passengers (at least 1).
	Adults int `json:"adults"`

	// Children is the number of child passengers.
	Children int `json:"children,omitempty"`

	// Infants is the number of infant passengers.
	Infants int `json:"infants,omitempty"`

	// CabinClass is economy, premium_economy, business or first (optional,
	// defaults to economy).
	CabinClass string `json:"cabinClass,omitempty"`

	// Currency is the ISO 4217 currency code (optional, defaults to USD).
	Currency string `json:"currency,omitempty"`

	// Filters contains optional filtering criteria.
	Filters *FilterDTO `json:"filters,omitempty"`

	// Preferences contains optional traveler preferences for scoring.
	Preferences *PreferencesDTO `json:"preferences,omitempty"`

	// SortBy selects the result ordering (price_asc, price_desc,
	// duration_asc, duration_desc, departure_asc, departure_desc,
	// stops_asc, stops_desc, score, recommended).
	SortBy string `json:"sortBy,omitempty"`
}

// FilterDTO carries the optional search filters.
type FilterDTO struct {
	// MinPrice excludes flights cheaper than this amount.
	MinPrice *float64 `json:"minPrice,omitempty"`

	// MaxPrice excludes flights more expensive than this amount.
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// MaxStops excludes flights with more stops than this value.
	MaxStops *int `json:"maxStops,omitempty"`

	// DirectOnly keeps only nonstop flights.
	DirectOnly bool `json:"directOnly,omitempty"`

	// Airlines keeps only flights whose airline name matches one of these
	// entries (case-insensitive substring).
	Airlines []string `json:"airlines,omitempty"`

	// ExcludeAirlines drops flights whose airline name matches one of these
	// entries.
	ExcludeAirlines []string `json:"excludeAirlines,omitempty"`

	// DepartureWindow keeps flights departing inside this local-time window.
	DepartureWindow *TimeWindowDTO `json:"departureWindow,omitempty"`

	// ArrivalWindow keeps flights arriving inside this local-time window.
	ArrivalWindow *TimeWindowDTO `json:"arrivalWindow,omitempty"`

	// MinDurationMinutes excludes flights shorter than this.
	MinDurationMinutes *int `json:"minDurationMinutes,omitempty"`

	// MaxDurationMinutes excludes flights longer than this.
	MaxDurationMinutes *int `json:"maxDurationMinutes,omitempty"`

	// Refundable, when set, requires the fare's refundability to match.
	Refundable *bool `json:"refundable,omitempty"`

	// Changeable, when set, requires the fare's changeability to match.
	Changeable *bool `json:"changeable,omitempty"`
}

// TimeWindowDTO is a local-time window in HH:MM format.
type TimeWindowDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PreferencesDTO carries the optional traveler preferences.
type PreferencesDTO struct {
	PrioritizePrice       bool   `json:"prioritizePrice,omitempty"`
	PrioritizeConvenience bool   `json:"prioritizeConvenience,omitempty"`
	PrioritizeDuration    bool   `json:"prioritizeDuration,omitempty"`
	PreferDirect          bool   `json:"preferDirect,omitempty"`
	TravelStyle           string `json:"travelStyle,omitempty"`
	Flexibility           string `json:"flexibility,omitempty"`
	PreferredTime         string `json:"preferredTime,omitempty"`
}

// Validation patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern        = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

var validCabinClasses = map[string]bool{
	"":                true, // defaults to economy
	"economy":         true,
	"premium_economy": true,
	"business":        true,
	"first":           true,
}

var validSortOptions = map[string]bool{
	"":               true, // defaults to recommended
	"price_asc":      true,
	"price_desc":     true,
	"duration_asc":   true,
	"duration_desc":  true,
	"departure_asc":  true,
	"departure_desc": true,
	"stops_asc":      true,
	"stops_desc":     true,
	"score":          true,
	"recommended":    true,
}

var validTravelStyles = map[string]bool{
	"":          true,
	"budget":    true,
	"mid-range": true,
	"luxury":    true,
}

var validFlexibilities = map[string]bool{
	"":         true,
	"exact":    true,
	"flexible": true,
}

var validPreferredTimes = map[string]bool{
	"":          true,
	"morning":   true,
	"afternoon": true,
	"evening":   true,
}

// FieldError is a single field-level validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every field-level validation error in a request.
type ValidationErrors struct {
	Errors []FieldError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts the errors to a field→message map for the API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate checks the whole request and collects every violation, unlike the
// domain-level validation which stops at the first one.
func (r *SearchFlightsRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateAirports(errs)
	r.validateDates(errs)
	r.validatePassengers(errs)

	if !validCabinClasses[strings.ToLower(r.CabinClass)] {
		errs.Add("cabinClass", "cabinClass must be one of economy, premium_economy, business, first")
	}
	if !validSortOptions[strings.ToLower(r.SortBy)] {
		errs.Add("sortBy", "unknown sort option")
	}

	r.validateFilters(errs)
	r.validatePreferences(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchFlightsRequest) validateAirports(errs *ValidationErrors) {
	origin := strings.ToUpper(r.Origin)
	destination := strings.ToUpper(r.Destination)

	switch {
	case origin == "":
		errs.Add("origin", "origin is required")
	case !airportCodePattern.MatchString(origin):
		errs.Add("origin", "origin must be a 3-letter IATA airport code")
	}

	switch {
	case destination == "":
		errs.Add("destination", "destination is required")
	case !airportCodePattern.MatchString(destination):
		errs.Add("destination", "destination must be a 3-letter IATA airport code")
	}

	if origin != "" && origin == destination {
		errs.Add("destination", "origin and destination must be different")
	}
}

func (r *SearchFlightsRequest) validateDates(errs *ValidationErrors) {
	switch {
	case r.DepartureDate == "":
		errs.Add("departureDate", "departureDate is required")
	case !isValidDate(r.DepartureDate):
		errs.Add("departureDate", "departureDate must be a valid YYYY-MM-DD date")
	}

	if r.ReturnDate != nil && *r.ReturnDate != "" {
		if !isValidDate(*r.ReturnDate) {
			errs.Add("returnDate", "returnDate must be a valid YYYY-MM-DD date")
		} else if isValidDate(r.DepartureDate) && *r.ReturnDate < r.DepartureDate {
			errs.Add("returnDate", "returnDate must not be before departureDate")
		}
	}
}

func (r *SearchFlightsRequest) validatePassengers(errs *ValidationErrors) {
	if r.Adults < 1 {
		errs.Add("adults", "at least one adult passenger is required")
	}
	if r.Children < 0 {
		errs.Add("children", "children must not be negative")
	}
	if r.Infants < 0 {
		errs.Add("infants", "infants must not be negative")
	}
}

func (r *SearchFlightsRequest) validateFilters(errs *ValidationErrors) {
	f := r.Filters
	if f == nil {
		return
	}

	if f.MinPrice != nil && *f.MinPrice < 0 {
		errs.Add("filters.minPrice", "minPrice must not be negative")
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		errs.Add("filters.maxPrice", "maxPrice must not be negative")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		errs.Add("filters.minPrice", "minPrice must not exceed maxPrice")
	}
	if f.MaxStops != nil && *f.MaxStops < 0 {
		errs.Add("filters.maxStops", "maxStops must not be negative")
	}
	if f.MinDurationMinutes != nil && *f.MinDurationMinutes < 0 {
		errs.Add("filters.minDurationMinutes", "minDurationMinutes must not be negative")
	}
	if f.MaxDurationMinutes != nil && *f.MaxDurationMinutes < 0 {
		errs.Add("filters.maxDurationMinutes", "maxDurationMinutes must not be negative")
	}
	if f.MinDurationMinutes != nil && f.MaxDurationMinutes != nil &&
		*f.MinDurationMinutes > *f.MaxDurationMinutes {
		errs.Add("filters.minDurationMinutes", "minDurationMinutes must not exceed maxDurationMinutes")
	}

	validateWindow(errs, "filters.departureWindow", f.DepartureWindow)
	validateWindow(errs, "filters.arrivalWindow", f.ArrivalWindow)
}

func validateWindow(errs *ValidationErrors, field string, w *TimeWindowDTO) {
	if w == nil {
		return
	}

	if w.Start == "" {
		errs.Add(field+".start", "start time is required when the window is specified")
	} else if !isValidTime(w.Start) {
		errs.Add(field+".start", "start must be in HH:MM format")
	}

	if w.End == "" {
		errs.Add(field+".end", "end time is required when the window is specified")
	} else if !isValidTime(w.End) {
		errs.Add(field+".end", "end must be in HH:MM format")
	}
}

func (r *SearchFlightsRequest) validatePreferences(errs *ValidationErrors) {
	p := r.Preferences
	if p == nil {
		return
	}

	if !validTravelStyles[strings.ToLower(p.TravelStyle)] {
		errs.Add("preferences.travelStyle", "travelStyle must be one of budget, mid-range, luxury")
	}
	if !validFlexibilities[strings.ToLower(p.Flexibility)] {
		errs.Add("preferences.flexibility", "flexibility must be exact or flexible")
	}
	if !validPreferredTimes[strings.ToLower(p.PreferredTime)] {
		errs.Add("preferences.preferredTime", "preferredTime must be morning, afternoon or evening")
	}
}

// isValidDate checks YYYY-MM-DD format and calendar validity.
func isValidDate(date string) bool {
	if !datePattern.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// isValidTime checks HH:MM format with in-range hours and minutes.
func isValidTime(value string) bool {
	if !timePattern.MatchString(value) {
		return false
	}
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%02d:%02d", &hour, &minute); err != nil {
		return false
	}
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}
