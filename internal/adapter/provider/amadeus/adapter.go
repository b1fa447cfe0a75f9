// Package amadeus implements the primary flight provider adapter. It speaks
// the flight-offers REST API with OAuth2 client-credentials authentication.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wanderplan/flight-engine/internal/domain"
	"github.com/wanderplan/flight-engine/internal/infrastructure/logger"
	"github.com/wanderplan/flight-engine/internal/infrastructure/ratelimit"
	"github.com/wanderplan/flight-engine/internal/infrastructure/retry"
	"github.com/wanderplan/flight-engine/internal/infrastructure/timeutil"
)

// offersPath is the flight-offers search endpoint, relative to the API base.
const offersPath = "/v2/shopping/flight-offers"

// maxOffers caps how many offers one search requests from the API.
const maxOffers = 50

// Config holds the adapter's credentials and endpoints.
type Config struct {
	ClientID     string
	ClientSecret string

	// TokenURL is the OAuth2 token endpoint.
	TokenURL string

	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// HTTPTimeout bounds each individual HTTP call. The orchestrator's
	// per-provider timeout still bounds the whole search.
	HTTPTimeout time.Duration
}

// Adapter queries the flight-offers API and normalizes its offers.
type Adapter struct {
	cfg     Config
	client  *http.Client
	tokens  *tokenHolder
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

	client := &http.Client{Timeout: cfg.HTTPTimeout}

	return &Adapter{
		cfg:     cfg,
		client:  client,
		tokens:  newTokenHolder(client, clock, cfg.TokenURL, cfg.ClientID, cfg.ClientSecret),
		limiter: limiter,
		clock:   clock,
		log:     log.WithSource(string(domain.SourceAmadeus)),
	}
}

// Name implements domain.FlightProvider.
func (a *Adapter) Name() domain.Source {
	return domain.SourceAmadeus
}

// Search implements domain.FlightProvider. Transport-level failures are
// retried with backoff; API rejections are not.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Flight, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx, domain.SourceAmadeus); err != nil {
			return nil, domain.NewProviderError(domain.SourceAmadeus, fmt.Errorf("rate limiter: %w", err))
		}
	}

	payload, err := retry.DoWithResult(ctx, func() (offersResponse, error) {
		return a.fetchOffers(ctx, req)
	}, retryConfig())
	if err != nil {
		return nil, err
	}

	flights := normalize(payload, a.clock.Now())
	a.log.Debug().Int("offers", len(payload.Data)).Int("flights", len(flights)).Msg("offers normalized")
	return flights, nil
}

// fetchOffers performs one authenticated request against the offers endpoint.
func (a *Adapter) fetchOffers(ctx context.Context, req domain.SearchRequest) (offersResponse, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return offersResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+offersPath, nil)
	if err != nil {
		return offersResponse{}, domain.NewProviderError(domain.SourceAmadeus, fmt.Errorf("build request: %w", err))
	}
	httpReq.URL.RawQuery = searchQuery(req).Encode()
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return offersResponse{}, domain.NewRetryableProviderError(domain.SourceAmadeus, fmt.Errorf("offers request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return offersResponse{}, domain.NewRetryableProviderError(domain.SourceAmadeus, fmt.Errorf("read offers response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		// The cached token was revoked upstream; a retry fetches a new one.
		a.tokens.Invalidate()
		return offersResponse{}, domain.NewRetryableProviderError(domain.SourceAmadeus, fmt.Errorf("token rejected"))
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return offersResponse{}, domain.NewRetryableProviderError(domain.SourceAmadeus,
			fmt.Errorf("offers endpoint returned %d: %s", resp.StatusCode, apiErrorDetail(body)))
	default:
		return offersResponse{}, domain.NewProviderError(domain.SourceAmadeus,
			fmt.Errorf("offers endpoint returned %d: %s", resp.StatusCode, apiErrorDetail(body)))
	}

	var payload offersResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return offersResponse{}, domain.NewProviderError(domain.SourceAmadeus, fmt.Errorf("decode offers response: %w", err))
	}
	return payload, nil
}

// searchQuery maps the canonical request onto the API's query parameters.
func searchQuery(req domain.SearchRequest) url.Values {
	q := url.Values{}
	q.Set("originLocationCode", req.Origin)
	q.Set("destinationLocationCode", req.Destination)
	q.Set("departureDate", req.DepartureDate)
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
		q.Set("travelClass", strings.ToUpper(req.CabinClass))
	}
	if req.Currency != "" {
		q.Set("currencyCode", req.Currency)
	}
	q.Set("max", strconv.Itoa(maxOffers))
	return q
}

// retryConfig retries only transport-level provider errors.
func retryConfig() retry.Config {
	cfg := retry.ProviderConfig
	cfg.RetryIf = domain.IsRetryable
	return cfg
}

// apiErrorDetail extracts a human-readable message from an API error body,
// falling back to the raw body.
func apiErrorDetail(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		e := parsed.Errors[0]
		if e.Detail != "" {
			return e.Detail
		}
		return e.Title
	}
	return strings.TrimSpace(string(body))
}

var _ domain.FlightProvider = (*Adapter)(nil)
