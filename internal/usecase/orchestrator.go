package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wanderplan/flight-engine/internal/cache"
	"github.com/wanderplan/flight-engine/internal/domain"
	"github.com/wanderplan/flight-engine/internal/infrastructure/logger"
)

// DefaultProviderTimeout bounds each individual adapter call.
const DefaultProviderTimeout = 30 * time.Second

// SearchEngine is the flight search orchestrator. It owns the full pipeline:
// validate, cache lookup, concurrent provider fan-out, merge/dedupe, filter,
// score, rank, recommend, cache write.
type SearchEngine interface {
	// Search executes one orchestrated flight search. A non-nil error is
	// returned only for validation failures; every other fault is absorbed
	// into the response per the engine's degradation rules.
	Search(ctx context.Context, req domain.SearchRequest, opts SearchOptions) (*domain.SearchResponse, error)
}

// Config contains orchestrator tuning options.
type Config struct {
	// ProviderTimeout is the time budget for each adapter call.
	ProviderTimeout time.Duration
}

type searchEngine struct {
	registry        *domain.ProviderRegistry
	cache           cache.Cache
	providerTimeout time.Duration
	log             *logger.Logger
}

// NewSearchEngine creates a SearchEngine over the given providers and cache.
// A nil config uses defaults; a nil cache disables caching.
func NewSearchEngine(registry *domain.ProviderRegistry, resultCache cache.Cache, cfg *Config, log *logger.Logger) SearchEngine {
	timeout := DefaultProviderTimeout
	if cfg != nil && cfg.ProviderTimeout > 0 {
		timeout = cfg.ProviderTimeout
	}
	if resultCache == nil {
		resultCache = cache.NewNoOp()
	}
	if log == nil {
		log = logger.Nop()
	}

	return &searchEngine{
		registry:        registry,
		cache:           resultCache,
		providerTimeout: timeout,
		log:             log,
	}
}

// Search implements SearchEngine.
func (e *searchEngine) Search(ctx context.Context, req domain.SearchRequest, opts SearchOptions) (resp *domain.SearchResponse, err error) {
	start := time.Now()

	req.SetDefaults()
	if vErr := req.Validate(); vErr != nil {
		return nil, vErr
	}

	searchID := uuid.New().String()
	log := e.log.WithSearchID(searchID)

	// The outermost safety net: a fault inside merge/filter/score is not a
	// provider problem and must not escape. Degrade to the generator alone.
	defer func() {
		if r := recover(); r != nil {
			resp = e.degrade(ctx, req, opts, searchID, start, r)
			err = nil
		}
	}()

	signature := req.Signature()
	if cached, ok := e.cache.Get(ctx, signature); ok {
		log.Debug().Int("flights", len(cached)).Msg("cache hit")
		resp = e.finish(req, opts, cached, searchID, start)
		resp.CacheHit = true
		resp.FallbackUsed, resp.FallbackReason = fallbackFromSources(cached)
		return resp, nil
	}

	results := e.fanOut(ctx, req)

	var merged []domain.Flight
	externalAttempted := 0
	externalFailed := 0
	externalFlights := 0
	for _, r := range results {
		if r.Source != domain.SourceFallback {
			externalAttempted++
			if r.Err != nil {
				externalFailed++
			} else {
				externalFlights += len(r.Flights)
			}
		}
		if r.Err != nil {
			log.Warn().
				Str("source", string(r.Source)).
				Int64("duration_ms", r.DurationMs).
				Err(r.Err).
				Msg("provider failed")
			continue
		}
		merged = append(merged, r.Flights...)
	}

	deduped := Deduplicate(merged)

	// Cache the post-merge, pre-filter list; never cache empty results.
	if len(deduped) > 0 {
		if cErr := e.cache.Set(ctx, signature, deduped); cErr != nil {
			log.Warn().Err(cErr).Msg("cache write failed")
		}
	}

	resp = e.finish(req, opts, deduped, searchID, start)
	resp.FallbackUsed, resp.FallbackReason = fallbackReason(externalAttempted, externalFailed, externalFlights)

	log.Info().
		Int("total_results", resp.TotalResults).
		Bool("fallback_used", resp.FallbackUsed).
		Int64("search_time_ms", resp.SearchTimeMs).
		Msg("search completed")

	return resp, nil
}

// fanOut queries every enabled provider concurrently, each bounded by its own
// timeout, and joins all outcomes. One slow or broken adapter never blocks or
// cancels its siblings; there is no first-success short-circuit.
func (e *searchEngine) fanOut(ctx context.Context, req domain.SearchRequest) []domain.AdapterResult {
	providers := e.registry.All()
	resultsChan := make(chan domain.AdapterResult, len(providers))

	var wg sync.WaitGroup
	for _, p := range providers {
		wg.Add(1)
		go func(p domain.FlightProvider) {
			defer wg.Done()
			resultsChan <- e.queryProvider(ctx, p, req)
		}(p)
	}

	wg.Wait()
	close(resultsChan)

	results := make([]domain.AdapterResult, 0, len(providers))
	for r := range resultsChan {
		results = append(results, r)
	}
	return results
}

// queryProvider runs a single adapter call with its own timeout and panic
// isolation.
func (e *searchEngine) queryProvider(ctx context.Context, provider domain.FlightProvider, req domain.SearchRequest) (result domain.AdapterResult) {
	callCtx, cancel := context.WithTimeout(ctx, e.providerTimeout)
	defer cancel()

	start := time.Now()
	source := provider.Name()

	defer func() {
		result.Source = source
		result.DurationMs = time.Since(start).Milliseconds()
		if r := recover(); r != nil {
			result.Flights = nil
			result.Err = domain.NewProviderError(source, fmt.Errorf("provider panic: %v", r))
		}
	}()

	flights, err := provider.Search(callCtx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = domain.NewProviderTimeoutError(source)
		}
		return domain.AdapterResult{Err: err}
	}
	return domain.AdapterResult{Flights: flights}
}

// finish runs the filter/score/sort/recommend pipeline and assembles the
// response.
func (e *searchEngine) finish(req domain.SearchRequest, opts SearchOptions, flights []domain.Flight, searchID string, start time.Time) *domain.SearchResponse {
	filtered := ApplyFilters(flights, req.Filters)
	scored := ScoreFlights(filtered, req.Preferences, req.Filters)
	sorted := SortFlights(scored, opts.SortBy)

	if sorted == nil {
		sorted = []domain.Flight{}
	}

	return &domain.SearchResponse{
		Success:         true,
		Flights:         sorted,
		TotalResults:    len(sorted),
		SearchID:        searchID,
		SearchTimeMs:    time.Since(start).Milliseconds(),
		AppliedFilters:  req.Filters,
		Recommendations: BuildRecommendations(sorted),
	}
}

// degrade is the catastrophic path: the pipeline itself faulted, so run only
// the generator synchronously and report the failure. The caller still gets
// a structurally complete response.
func (e *searchEngine) degrade(ctx context.Context, req domain.SearchRequest, opts SearchOptions, searchID string, start time.Time, cause interface{}) *domain.SearchResponse {
	aggErr := domain.NewAggregationError("pipeline", fmt.Errorf("%v", cause))
	e.log.Error().Str("search_id", searchID).Err(aggErr).Msg("aggregation fault, degrading to generator")

	resp := &domain.SearchResponse{
		Success:        false,
		Flights:        []domain.Flight{},
		SearchID:       searchID,
		FallbackUsed:   true,
		FallbackReason: "search pipeline failed, returning generated offers",
		Error:          aggErr.Error(),
		Recommendations: domain.Recommendations{
			TopRated:     []domain.Flight{},
			Personalized: []domain.Flight{},
		},
	}

	generator := e.registry.Get(domain.SourceFallback)
	if generator != nil {
		if flights, gErr := generator.Search(ctx, req); gErr == nil {
			resp.Flights = e.safePipeline(req, opts, flights)
			resp.Recommendations = BuildRecommendations(resp.Flights)
		}
	}

	resp.TotalResults = len(resp.Flights)
	resp.SearchTimeMs = time.Since(start).Milliseconds()
	return resp
}

// safePipeline applies filter/score/sort but falls back to the raw list if
// the pipeline faults a second time.
func (e *searchEngine) safePipeline(req domain.SearchRequest, opts SearchOptions, flights []domain.Flight) (result []domain.Flight) {
	result = flights
	defer func() {
		if r := recover(); r != nil {
			result = flights
		}
	}()

	filtered := ApplyFilters(flights, req.Filters)
	scored := ScoreFlights(filtered, req.Preferences, req.Filters)
	return SortFlights(scored, opts.SortBy)
}

// fallbackReason derives the fallback metadata from the external adapters'
// outcomes.
func fallbackReason(attempted, failed, flightsFound int) (bool, string) {
	switch {
	case attempted == 0:
		return true, "no external providers enabled"
	case failed == attempted:
		return true, "all external providers failed"
	case flightsFound == 0:
		return true, "external providers returned no results"
	default:
		return false, ""
	}
}

// fallbackFromSources reports fallback usage for a cached list by inspecting
// the surviving records' source tags.
func fallbackFromSources(flights []domain.Flight) (bool, string) {
	for _, f := range flights {
		if f.Source != domain.SourceFallback {
			return false, ""
		}
	}
	return true, "cached results contain generated offers only"
}

// Ensure searchEngine implements SearchEngine at compile time.
var _ SearchEngine = (*searchEngine)(nil)
