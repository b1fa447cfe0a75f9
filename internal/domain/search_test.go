package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() SearchRequest {
	return SearchRequest{
		Origin:        "JFK",
		Destination:   "CDG",
		DepartureDate: "2026-10-01",
		Adults:        1,
		CabinClass:    "economy",
		Currency:      "USD",
	}
}

func TestSearchRequest_Validate(t *testing.T) {
	retDate := "2026-10-10"
	badRetDate := "10/10/2026"

	tests := []struct {
		name      string
		mutate    func(*SearchRequest)
		wantErr   bool
		wantField string
	}{
		{name: "valid request", mutate: func(r *SearchRequest) {}, wantErr: false},
		{
			name:      "missing origin",
			mutate:    func(r *SearchRequest) { r.Origin = "" },
			wantErr:   true,
			wantField: "origin",
		},
		{
			name:      "lowercase origin rejected",
			mutate:    func(r *SearchRequest) { r.Origin = "jfk" },
			wantErr:   true,
			wantField: "origin",
		},
		{
			name:      "missing destination",
			mutate:    func(r *SearchRequest) { r.Destination = "" },
			wantErr:   true,
			wantField: "destination",
		},
		{
			name:      "origin equals destination",
			mutate:    func(r *SearchRequest) { r.Destination = "JFK" },
			wantErr:   true,
			wantField: "destination",
		},
		{
			name:      "missing departure date",
			mutate:    func(r *SearchRequest) { r.DepartureDate = "" },
			wantErr:   true,
			wantField: "departureDate",
		},
		{
			name:      "bad departure date format",
			mutate:    func(r *SearchRequest) { r.DepartureDate = "01-10-2026" },
			wantErr:   true,
			wantField: "departureDate",
		},
		{
			name:      "impossible departure date",
			mutate:    func(r *SearchRequest) { r.DepartureDate = "2026-02-31" },
			wantErr:   true,
			wantField: "departureDate",
		},
		{
			name:    "valid return date",
			mutate:  func(r *SearchRequest) { r.ReturnDate = &retDate },
			wantErr: false,
		},
		{
			name:      "bad return date",
			mutate:    func(r *SearchRequest) { r.ReturnDate = &badRetDate },
			wantErr:   true,
			wantField: "returnDate",
		},
		{
			name:      "zero adults",
			mutate:    func(r *SearchRequest) { r.Adults = 0 },
			wantErr:   true,
			wantField: "adults",
		},
		{
			name:      "negative children",
			mutate:    func(r *SearchRequest) { r.Children = -1 },
			wantErr:   true,
			wantField: "children",
		},
		{
			name:      "negative infants",
			mutate:    func(r *SearchRequest) { r.Infants = -2 },
			wantErr:   true,
			wantField: "infants",
		},
		{
			name:      "unknown cabin class",
			mutate:    func(r *SearchRequest) { r.CabinClass = "steerage" },
			wantErr:   true,
			wantField: "cabinClass",
		},
		{
			name:    "empty cabin class allowed",
			mutate:  func(r *SearchRequest) { r.CabinClass = "" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, IsInvalidRequest(err))

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestSearchRequest_SetDefaults(t *testing.T) {
	req := SearchRequest{Origin: "JFK", Destination: "CDG", DepartureDate: "2026-10-01", Adults: 2}
	req.SetDefaults()

	assert.Equal(t, "economy", req.CabinClass)
	assert.Equal(t, "USD", req.Currency)

	// Explicit values survive.
	req2 := validRequest()
	req2.CabinClass = "business"
	req2.Currency = "EUR"
	req2.SetDefaults()
	assert.Equal(t, "business", req2.CabinClass)
	assert.Equal(t, "EUR", req2.Currency)
}

func TestSearchRequest_Signature(t *testing.T) {
	base := validRequest()

	t.Run("stable for identical requests", func(t *testing.T) {
		other := validRequest()
		assert.Equal(t, base.Signature(), other.Signature())
	})

	t.Run("filters and preferences do not change the key", func(t *testing.T) {
		maxPrice := 500.0
		withFilters := validRequest()
		withFilters.Filters = &Filters{MaxPrice: &maxPrice}
		withFilters.Preferences = &Preferences{TravelStyle: StyleLuxury}
		assert.Equal(t, base.Signature(), withFilters.Signature())
	})

	t.Run("route change changes the key", func(t *testing.T) {
		other := validRequest()
		other.Destination = "LHR"
		assert.NotEqual(t, base.Signature(), other.Signature())
	})

	t.Run("passenger change changes the key", func(t *testing.T) {
		other := validRequest()
		other.Adults = 3
		assert.NotEqual(t, base.Signature(), other.Signature())
	})

	t.Run("return date changes the key", func(t *testing.T) {
		ret := "2026-10-12"
		other := validRequest()
		other.ReturnDate = &ret
		assert.NotEqual(t, base.Signature(), other.Signature())
	})
}

func TestSearchRequest_TotalPassengers(t *testing.T) {
	req := SearchRequest{Adults: 2, Children: 1, Infants: 1}
	assert.Equal(t, 4, req.TotalPassengers())
}
