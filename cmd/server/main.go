// Package main is the entry point for the flight search orchestration
// service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"

	flighthttp "github.com/wanderplan/flight-engine/internal/adapter/http"
	"github.com/wanderplan/flight-engine/internal/adapter/http/middleware"
	"github.com/wanderplan/flight-engine/internal/adapter/provider/amadeus"
	"github.com/wanderplan/flight-engine/internal/adapter/provider/fallback"
	"github.com/wanderplan/flight-engine/internal/adapter/provider/kiwi"
	"github.com/wanderplan/flight-engine/internal/adapter/provider/skyscanner"
	"github.com/wanderplan/flight-engine/internal/cache"
	"github.com/wanderplan/flight-engine/internal/config"
	"github.com/wanderplan/flight-engine/internal/domain"
	"github.com/wanderplan/flight-engine/internal/infrastructure/logger"
	"github.com/wanderplan/flight-engine/internal/infrastructure/ratelimit"
	"github.com/wanderplan/flight-engine/internal/infrastructure/timeutil"
	"github.com/wanderplan/flight-engine/internal/usecase"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "flight-engine",
	})

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("configuration loaded")

	clock := timeutil.NewRealClock()
	registry := buildRegistry(cfg, clock, log)
	resultCache := buildCache(cfg, clock, log)
	defer resultCache.Close()

	engine := usecase.NewSearchEngine(registry, resultCache, &usecase.Config{
		ProviderTimeout: cfg.Timeouts.PerProvider,
	}, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log)
	flighthttp.RegisterRoutes(e, flighthttp.NewFlightHandler(engine))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Strs("providers", sourceNames(registry)).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	gracefulShutdown(e, cfg, log)
}

// buildRegistry registers every provider with credentials, plus the always-on
// generator.
func buildRegistry(cfg *config.Config, clock timeutil.Clock, log *logger.Logger) *domain.ProviderRegistry {
	limiter := ratelimit.NewProviderLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimits.RequestsPerSecond,
		BurstSize:         cfg.RateLimits.BurstSize,
	})

	registry := domain.NewProviderRegistry()

	if cfg.AmadeusEnabled() {
		registry.Register(amadeus.NewAdapter(amadeus.Config{
			ClientID:     cfg.Providers.Amadeus.ClientID,
			ClientSecret: cfg.Providers.Amadeus.ClientSecret,
			TokenURL:     cfg.Providers.Amadeus.TokenURL,
			BaseURL:      cfg.Providers.Amadeus.BaseURL,
			HTTPTimeout:  cfg.Providers.Amadeus.HTTPTimeout,
		}, limiter, clock, log))
	}

	if cfg.SkyScannerEnabled() {
		registry.Register(skyscanner.NewAdapter(skyscanner.Config{
			APIKey:      cfg.Providers.SkyScanner.APIKey,
			Hosts:       cfg.Providers.SkyScanner.Hosts,
			HTTPTimeout: cfg.Providers.SkyScanner.HTTPTimeout,
		}, limiter, clock, log))
	}

	if cfg.Providers.KiwiEnabled {
		registry.Register(kiwi.NewAdapter())
	}

	registry.Register(fallback.NewGenerator(clock))

	return registry
}

// buildCache selects the configured cache backend, falling back to the
// in-memory cache when Redis is unreachable at startup.
func buildCache(cfg *config.Config, clock timeutil.Clock, log *logger.Logger) cache.Cache {
	if !cfg.Cache.Enabled {
		log.Info().Msg("result cache disabled")
		return cache.NewNoOp()
	}

	if cfg.Cache.Backend == "redis" {
		redisCache, err := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			log.Error().Err(err).Msg("redis unreachable, using in-memory cache")
			return cache.NewMemory(cfg.Cache.TTL, clock)
		}
		log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("using redis result cache")
		return redisCache
	}

	return cache.NewMemory(cfg.Cache.TTL, clock)
}

func sourceNames(registry *domain.ProviderRegistry) []string {
	sources := registry.Sources()
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = string(s)
	}
	return names
}

// gracefulShutdown blocks until an interrupt, then drains in-flight requests.
func gracefulShutdown(e *echo.Echo, cfg *config.Config, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
