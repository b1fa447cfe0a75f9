package skyscanner

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
)

const itinerariesBody = `{
	"status": true,
	"itineraries": [
		{
			"id": "13542-2026-10-01",
			"legs": [
				{
					"origin": {"displayCode": "JFK", "city": "New York"},
					"destination": {"displayCode": "CDG", "city": "Paris"},
					"departure": "2026-10-01T18:30:00",
					"arrival": "2026-10-02T07:55:00",
					"durationInMinutes": 445,
					"stopCount": 0,
					"carriers": {"marketing": [{"name": "Delta", "alternateId": "DL"}]},
					"segments": [
						{"flightNumber": "264", "marketingCarrier": {"name": "Delta", "alternateId": "DL"}}
					]
				}
			],
			"price": {"raw": 512.30},
			"farePolicy": {"isChangeAllowed": true, "isCancellationAllowed": false}
		}
	]
}`

func testRequest() domain.SearchRequest {
	return domain.SearchRequest{
		Origin:        "JFK",
		Destination:   "CDG",
		DepartureDate: "2026-10-01",
		Adults:        2,
		CabinClass:    "economy",
		Currency:      "USD",
	}
}

func newHost(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(searchPath, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestAdapter_Name(t *testing.T) {
	adapter := NewAdapter(Config{}, nil, nil, nil)
	assert.Equal(t, domain.SourceSkyScanner, adapter.Name())
}

func TestAdapter_Search_NormalizesItineraries(t *testing.T) {
	host := newHost(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "JFK", r.URL.Query().Get("origin"))
		assert.Equal(t, "CDG", r.URL.Query().Get("destination"))
		assert.Equal(t, "2", r.URL.Query().Get("adults"))
		w.Write([]byte(itinerariesBody))
	})

	adapter := NewAdapter(Config{APIKey: "test-key", Hosts: []string{host.URL}}, nil, nil, nil)

	flights, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	require.Len(t, flights, 1)

	f := flights[0]
	assert.Equal(t, "skyscanner-13542-2026-10-01", f.ID)
	assert.Equal(t, "DL-264", f.FlightNumber)
	assert.Equal(t, "Delta", f.Airline.Name)
	assert.Equal(t, "JFK", f.Departure.AirportCode)
	assert.Equal(t, "New York", f.Departure.City)
	assert.Equal(t, "18:30", f.Departure.Time)
	assert.Equal(t, "2026-10-01", f.Departure.Date)
	assert.Equal(t, "2026-10-02", f.Arrival.Date)
	assert.Equal(t, 445, f.Duration.TotalMinutes)
	assert.Equal(t, 512.30, f.Price.Amount)
	assert.Equal(t, "USD", f.Price.Currency)
	assert.Equal(t, 0, f.Stops)
	assert.True(t, f.Changeable)
	assert.False(t, f.Refundable)
	assert.Equal(t, domain.SourceSkyScanner, f.Source)
}

func TestAdapter_Search_FirstNonEmptyHostWins(t *testing.T) {
	var secondCalled int32

	empty := newHost(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": true, "itineraries": []}`))
	})
	full := newHost(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&secondCalled, 1)
		w.Write([]byte(itinerariesBody))
	})

	adapter := NewAdapter(Config{APIKey: "k", Hosts: []string{empty.URL, full.URL}}, nil, nil, nil)

	flights, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Len(t, flights, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&secondCalled))
}

func TestAdapter_Search_HostFailureMovesToNext(t *testing.T) {
	broken := newHost(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})
	full := newHost(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(itinerariesBody))
	})

	adapter := NewAdapter(Config{APIKey: "k", Hosts: []string{broken.URL, full.URL}}, nil, nil, nil)

	flights, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Len(t, flights, 1)
}

func TestAdapter_Search_AllHostsFailingIsEmptyNotError(t *testing.T) {
	broken := newHost(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})
	garbage := newHost(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	adapter := NewAdapter(Config{APIKey: "k", Hosts: []string{broken.URL, garbage.URL}}, nil, nil, nil)

	flights, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestAdapter_Search_NoHostsConfigured(t *testing.T) {
	adapter := NewAdapter(Config{APIKey: "k"}, nil, nil, nil)

	flights, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestAdapter_Search_CancelledContext(t *testing.T) {
	host := newHost(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(itinerariesBody))
	})

	adapter := NewAdapter(Config{APIKey: "k", Hosts: []string{host.URL}}, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.Search(ctx, testRequest())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalize_SkipsIncompleteItineraries(t *testing.T) {
	payload := searchResponse{
		Itineraries: []itinerary{
			{ID: "no-legs"},
			{
				ID: "no-segments",
				Legs: []leg{{
					Origin:      place{DisplayCode: "JFK"},
					Destination: place{DisplayCode: "CDG"},
					Departure:   "2026-10-01T09:00:00",
					Arrival:     "2026-10-01T17:00:00",
				}},
			},
			{
				ID: "bad-departure",
				Legs: []leg{{
					Origin:      place{DisplayCode: "JFK"},
					Destination: place{DisplayCode: "CDG"},
					Departure:   "tomorrow",
					Arrival:     "2026-10-01T17:00:00",
					Carriers:    carriers{Marketing: []carrier{{Name: "Delta", AlternateID: "DL"}}},
					Segments:    []segment{{FlightNumber: "264"}},
				}},
			},
		},
	}

	flights := normalize(payload, "economy", "USD", time.Now())

	assert.Empty(t, flights)
}

func TestNormalize_RejectsInvalidRecords(t *testing.T) {
	wellFormed := func(id string) itinerary {
		return itinerary{
			ID:    id,
			Price: price{Raw: 512.30},
			Legs: []leg{{
				Origin:            place{DisplayCode: "JFK"},
				Destination:       place{DisplayCode: "CDG"},
				Departure:         "2026-10-01T18:30:00",
				Arrival:           "2026-10-02T07:55:00",
				DurationInMinutes: 445,
				StopCount:         0,
				Carriers:          carriers{Marketing: []carrier{{Name: "Delta Air Lines", AlternateID: "DL"}}},
				Segments:          []segment{{FlightNumber: "264", MarketingCarrier: carrier{Name: "Delta Air Lines", AlternateID: "DL"}}},
			}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*itinerary)
	}{
		{
			name:   "zero duration",
			mutate: func(it *itinerary) { it.Legs[0].DurationInMinutes = 0 },
		},
		{
			name:   "negative duration",
			mutate: func(it *itinerary) { it.Legs[0].DurationInMinutes = -445 },
		},
		{
			name:   "negative price",
			mutate: func(it *itinerary) { it.Price.Raw = -50 },
		},
		{
			name:   "negative stop count",
			mutate: func(it *itinerary) { it.Legs[0].StopCount = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := wellFormed("bad")
			tt.mutate(&bad)

			flights := normalize(searchResponse{
				Itineraries: []itinerary{bad, wellFormed("ok")},
			}, "economy", "USD", time.Now())

			// The malformed record is dropped, not the batch.
			require.Len(t, flights, 1)
			assert.Equal(t, "skyscanner-ok", flights[0].ID)
		})
	}
}
