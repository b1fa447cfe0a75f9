package http

import (
	"strings"

	"github.com/wanderplan/flight-engine/internal/domain"
	"github.com/wanderplan/flight-engine/internal/usecase"
)

// ToDomainRequest converts a SearchFlightsRequest to the canonical search
// request. Defaults for cabin class and currency are applied by the engine.
func ToDomainRequest(req *SearchFlightsRequest) domain.SearchRequest {
	return domain.SearchRequest{
		Origin:        strings.ToUpper(req.Origin),
		Destination:   strings.ToUpper(req.Destination),
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		Children:      req.Children,
		Infants:       req.Infants,
		CabinClass:    strings.ToLower(req.CabinClass),
		Currency:      strings.ToUpper(req.Currency),
		Filters:       ToDomainFilters(req.Filters),
		Preferences:   ToDomainPreferences(req.Preferences),
	}
}

// ToDomainFilters converts a FilterDTO to domain filters.
func ToDomainFilters(dto *FilterDTO) *domain.Filters {
	if dto == nil {
		return nil
	}

	return &domain.Filters{
		MinPrice:           dto.MinPrice,
		MaxPrice:           dto.MaxPrice,
		MaxStops:           dto.MaxStops,
		DirectOnly:         dto.DirectOnly,
		Airlines:           dto.Airlines,
		ExcludeAirlines:    dto.ExcludeAirlines,
		DepartureWindow:    toDomainWindow(dto.DepartureWindow),
		ArrivalWindow:      toDomainWindow(dto.ArrivalWindow),
		MinDurationMinutes: dto.MinDurationMinutes,
		MaxDurationMinutes: dto.MaxDurationMinutes,
		Refundable:         dto.Refundable,
		Changeable:         dto.Changeable,
	}
}

func toDomainWindow(dto *TimeWindowDTO) *domain.TimeWindow {
	if dto == nil || dto.Start == "" || dto.End == "" {
		return nil
	}
	return &domain.TimeWindow{
		Start: dto.Start,
		End:   dto.End,
	}
}

// ToDomainPreferences converts a PreferencesDTO to domain preferences.
func ToDomainPreferences(dto *PreferencesDTO) *domain.Preferences {
	if dto == nil {
		return nil
	}

	return &domain.Preferences{
		PrioritizePrice:       dto.PrioritizePrice,
		PrioritizeConvenience: dto.PrioritizeConvenience,
		PrioritizeDuration:    dto.PrioritizeDuration,
		PreferDirect:          dto.PreferDirect,
		TravelStyle:           domain.TravelStyle(strings.ToLower(dto.TravelStyle)),
		Flexibility:           domain.Flexibility(strings.ToLower(dto.Flexibility)),
		PreferredTime:         domain.TimeOfDay(strings.ToLower(dto.PreferredTime)),
	}
}

// ToSearchOptions converts the request's sort selection to engine options.
func ToSearchOptions(req *SearchFlightsRequest) usecase.SearchOptions {
	return usecase.SearchOptions{
		SortBy: domain.ParseSortOption(req.SortBy),
	}
}
