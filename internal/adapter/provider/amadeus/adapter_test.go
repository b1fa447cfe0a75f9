package amadeus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/flight-engine/internal/domain"
	"github.com/wanderplan/flight-engine/internal/infrastructure/timeutil"
)

const tokenBody = `{"access_token":"test-token","token_type":"Bearer","expires_in":1799}`

const offersBody = `{
	"data": [
		{
			"id": "1",
			"numberOfBookableSeats": 4,
			"itineraries": [
				{
					"duration": "PT7H35M",
					"segments": [
						{
							"departure": {"iataCode": "JFK", "at": "2026-10-01T09:15:00"},
							"arrival": {"iataCode": "CDG", "at": "2026-10-01T22:50:00"},
							"carrierCode": "AF",
							"number": "1234",
							"duration": "PT7H35M"
						}
					]
				}
			],
			"price": {"currency": "USD", "grandTotal": "420.50"},
			"travelerPricings": [
				{
					"fareDetailsBySegment": [
						{"cabin": "ECONOMY", "includedCheckedBags": {"quantity": 1}}
					]
				}
			]
		},
		{
			"id": "2",
			"numberOfBookableSeats": 2,
			"itineraries": [
				{
					"duration": "PT11H10M",
					"segments": [
						{
							"departure": {"iataCode": "JFK", "at": "2026-10-01T14:00:00"},
							"arrival": {"iataCode": "LHR", "at": "2026-10-01T21:30:00"},
							"carrierCode": "BA",
							"number": "117",
							"duration": "PT6H30M"
						},
						{
							"departure": {"iataCode": "LHR", "at": "2026-10-01T23:15:00"},
							"arrival": {"iataCode": "CDG", "at": "2026-10-02T01:10:00"},
							"carrierCode": "BA",
							"number": "306",
							"duration": "PT1H25M"
						}
					]
				}
			],
			"price": {"currency": "USD", "grandTotal": "380.00"},
			"travelerPricings": [
				{
					"fareDetailsBySegment": [
						{"cabin": "BUSINESS"}
					]
				}
			]
		}
	],
	"dictionaries": {"carriers": {"AF": "AIR FRANCE", "BA": "BRITISH AIRWAYS"}}
}`

func testRequest() domain.SearchRequest {
	return domain.SearchRequest{
		Origin:        "JFK",
		Destination:   "CDG",
		DepartureDate: "2026-10-01",
		Adults:        1,
		CabinClass:    "economy",
		Currency:      "USD",
	}
}

// newTestServer wires a token endpoint and an offers endpoint into one
// httptest server and returns a ready adapter.
func newTestServer(t *testing.T, offers http.HandlerFunc) (*Adapter, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.FormValue("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(tokenBody))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", offers)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	adapter := NewAdapter(Config{
		ClientID:     "client",
		ClientSecret: "secret",
		TokenURL:     server.URL + "/v1/security/oauth2/token",
		BaseURL:      server.URL,
	}, nil, nil, nil)
	return adapter, server
}

func TestAdapter_Name(t *testing.T) {
	adapter := NewAdapter(Config{}, nil, nil, nil)
	assert.Equal(t, domain.SourceAmadeus, adapter.Name())
}

func TestAdapter_Search_NormalizesOffers(t *testing.T) {
	adapter, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "JFK", r.URL.Query().Get("originLocationCode"))
		assert.Equal(t, "CDG", r.URL.Query().Get("destinationLocationCode"))
		assert.Equal(t, "2026-10-01", r.URL.Query().Get("departureDate"))
		assert.Equal(t, "ECONOMY", r.URL.Query().Get("travelClass"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(offersBody))
	})

	flights, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	require.Len(t, flights, 2)

	direct := flights[0]
	assert.Equal(t, "amadeus-1", direct.ID)
	assert.Equal(t, "AF-1234", direct.FlightNumber)
	assert.Equal(t, "AF", direct.Airline.Code)
	assert.Equal(t, "Air France", direct.Airline.Name)
	assert.Equal(t, "JFK", direct.Departure.AirportCode)
	assert.Equal(t, "09:15", direct.Departure.Time)
	assert.Equal(t, "2026-10-01", direct.Departure.Date)
	assert.Equal(t, "CDG", direct.Arrival.AirportCode)
	assert.Equal(t, 455, direct.Duration.TotalMinutes)
	assert.Equal(t, "7h 35m", direct.Duration.Formatted)
	assert.Equal(t, 420.50, direct.Price.Amount)
	assert.Equal(t, "USD", direct.Price.Currency)
	assert.Equal(t, 0, direct.Stops)
	assert.Equal(t, 1, direct.Baggage.CheckedBags)
	assert.Equal(t, "economy", direct.CabinClass)
	assert.Equal(t, domain.SourceAmadeus, direct.Source)
	require.NotNil(t, direct.Meta)
	require.NotNil(t, direct.Meta.AvailableSeats)
	assert.Equal(t, 4, *direct.Meta.AvailableSeats)

	connecting := flights[1]
	assert.Equal(t, "BA-117", connecting.FlightNumber)
	assert.Equal(t, "JFK", connecting.Departure.AirportCode)
	assert.Equal(t, "CDG", connecting.Arrival.AirportCode)
	assert.Equal(t, "2026-10-02", connecting.Arrival.Date)
	assert.Equal(t, 1, connecting.Stops)
	assert.Equal(t, 670, connecting.Duration.TotalMinutes)
	assert.Equal(t, "business", connecting.CabinClass)
}

func TestAdapter_Search_EmptyOffers(t *testing.T) {
	adapter, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	})

	flights, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestAdapter_Search_SkipsMalformedOffers(t *testing.T) {
	adapter, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": [
				{"id": "broken", "itineraries": [], "price": {"currency": "USD", "grandTotal": "100"}},
				{
					"id": "ok",
					"itineraries": [{"duration": "PT2H", "segments": [
						{"departure": {"iataCode": "JFK", "at": "2026-10-01T08:00:00"},
						 "arrival": {"iataCode": "BOS", "at": "2026-10-01T10:00:00"},
						 "carrierCode": "DL", "number": "42", "duration": "PT2H"}
					]}],
					"price": {"currency": "USD", "grandTotal": "99.00"}
				}
			]
		}`))
	})

	flights, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "amadeus-ok", flights[0].ID)
	assert.Equal(t, "economy", flights[0].CabinClass)
	// No carrier dictionary entry: the code doubles as the name.
	assert.Equal(t, "DL", flights[0].Airline.Name)
}

func TestAdapter_Search_RetriesServerErrors(t *testing.T) {
	var calls int32
	adapter, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, `{"errors":[{"status":500,"title":"Internal error"}]}`, http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data": []}`))
	})

	flights, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Empty(t, flights)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestAdapter_Search_DoesNotRetryBadRequest(t *testing.T) {
	var calls int32
	adapter, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `{"errors":[{"status":400,"title":"Bad request","detail":"INVALID DATE"}]}`, http.StatusBadRequest)
	})

	_, err := adapter.Search(context.Background(), testRequest())

	require.Error(t, err)
	assert.False(t, domain.IsRetryable(err))
	assert.Contains(t, err.Error(), "INVALID DATE")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	var pErr *domain.ProviderError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, domain.SourceAmadeus, pErr.Source)
}

func TestAdapter_Search_RefreshesRejectedToken(t *testing.T) {
	var calls int32
	adapter, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, `{"errors":[{"status":401,"title":"Unauthorized"}]}`, http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"data": []}`))
	})

	_, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestAdapter_Search_TokenEndpointFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	adapter := NewAdapter(Config{
		ClientID:     "client",
		ClientSecret: "wrong",
		TokenURL:     server.URL + "/token",
		BaseURL:      server.URL,
	}, nil, nil, nil)

	_, err := adapter.Search(context.Background(), testRequest())

	require.Error(t, err)
	assert.False(t, domain.IsRetryable(err))
}

func TestTokenHolder_CachesUntilNearExpiry(t *testing.T) {
	var tokenCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		w.Write([]byte(tokenBody))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	clock := timeutil.NewMockClock(time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC))
	holder := newTokenHolder(server.Client(), clock, server.URL+"/token", "client", "secret")

	for i := 0; i < 3; i++ {
		token, err := holder.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "test-token", token)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))

	// Inside the refresh margin the holder fetches a new token.
	clock.Advance(1790 * time.Second)
	_, err := holder.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&tokenCalls))
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantOK  bool
	}{
		{"PT7H35M", 455, true},
		{"PT2H", 120, true},
		{"PT45M", 45, true},
		{"PT0M", 0, true},
		{"PT", 0, false},
		{"7h35m", 0, false},
		{"PT7H35M10S", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseISODuration(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_RejectsInvalidOffers(t *testing.T) {
	wellFormed := func(id string) offer {
		return offer{
			ID: id,
			Itineraries: []itinerary{{
				Duration: "PT7H35M",
				Segments: []segment{{
					Departure:   segmentPoint{IataCode: "JFK", At: "2026-10-01T09:15:00"},
					Arrival:     segmentPoint{IataCode: "CDG", At: "2026-10-01T17:50:00"},
					CarrierCode: "AF",
					Number:      "1234",
					Duration:    "PT7H35M",
				}},
			}},
			Price: offerPrice{Currency: "USD", GrandTotal: "420.50"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*offer)
	}{
		{
			name: "zero duration",
			mutate: func(o *offer) {
				o.Itineraries[0].Duration = "PT0M"
				o.Itineraries[0].Segments[0].Duration = "PT0M"
			},
		},
		{
			name:   "negative price",
			mutate: func(o *offer) { o.Price.GrandTotal = "-420.50" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := wellFormed("bad")
			tt.mutate(&bad)

			flights := normalize(offersResponse{
				Data: []offer{bad, wellFormed("ok")},
			}, time.Now())

			// The malformed offer is dropped, not the batch.
			require.Len(t, flights, 1)
			assert.Equal(t, "amadeus-ok", flights[0].ID)
		})
	}
}
