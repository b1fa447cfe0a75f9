// Package integration exercises the full stack: HTTP handler, orchestrator
// and configurable provider doubles wired together the way cmd/server wires
// the real adapters.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	flighthttp "github.com/wanderplan/flight-engine/internal/adapter/http"
	"github.com/wanderplan/flight-engine/internal/cache"
	"github.com/wanderplan/flight-engine/internal/domain"
	"github.com/wanderplan/flight-engine/internal/usecase"
)

// TestServer wraps an echo instance serving the search routes.
type TestServer struct {
	Echo    *echo.Echo
	Handler *flighthttp.FlightHandler
}

// NewTestServer builds a server over the given engine.
func NewTestServer(engine usecase.SearchEngine) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := flighthttp.NewFlightHandler(engine)
	flighthttp.RegisterRoutes(e, handler)

	return &TestServer{Echo: e, Handler: handler}
}

// PostJSON issues a JSON POST through the full echo router and returns the
// recorder.
func (ts *TestServer) PostJSON(path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, req)
	return rec
}

// Get issues a GET through the full echo router and returns the recorder.
func (ts *TestServer) Get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, req)
	return rec
}

// CreateEngine builds a SearchEngine over the given providers with caching
// disabled, so tests see every provider call.
func CreateEngine(providers []domain.FlightProvider, cfg *usecase.Config) usecase.SearchEngine {
	return CreateEngineWithCache(providers, cfg, cache.NewNoOp())
}

// CreateEngineWithCache is CreateEngine with an explicit cache backend.
func CreateEngineWithCache(providers []domain.FlightProvider, cfg *usecase.Config, c cache.Cache) usecase.SearchEngine {
	registry := domain.NewProviderRegistry()
	for _, p := range providers {
		registry.Register(p)
	}
	return usecase.NewSearchEngine(registry, c, cfg, nil)
}

// DefaultSearchRequest returns a valid one-way search.
func DefaultSearchRequest() domain.SearchRequest {
	return domain.SearchRequest{
		Origin:        "JFK",
		Destination:   "CDG",
		DepartureDate: "2026-10-01",
		Adults:        1,
	}
}

// ShortTimeout is a provider budget small enough to trip delayed doubles
// without slowing the suite down.
func ShortTimeout() *usecase.Config {
	return &usecase.Config{ProviderTimeout: 100 * time.Millisecond}
}
