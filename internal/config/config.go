// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env
// files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Timeouts   TimeoutConfig
	Cache      CacheConfig
	Providers  ProvidersConfig
	RateLimits RateLimitConfig
	Logging    LoggingConfig
	App        AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// TimeoutConfig holds search operation timeouts.
type TimeoutConfig struct {
	// PerProvider bounds each adapter call inside a search.
	PerProvider time.Duration `env:"TIMEOUT_PER_PROVIDER" envDefault:"30s"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	// Enabled switches caching on; off uses a no-op cache.
	Enabled bool `env:"CACHE_ENABLED" envDefault:"true"`

	// Backend selects memory or redis.
	Backend string `env:"CACHE_BACKEND" envDefault:"memory"`

	// TTL is how long a cached search result stays live.
	TTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// RedisAddr is the redis host:port, required when Backend is redis.
	RedisAddr     string `env:"CACHE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"CACHE_REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"CACHE_REDIS_DB" envDefault:"0"`
}

// ProvidersConfig holds upstream provider credentials and endpoints.
type ProvidersConfig struct {
	Amadeus    AmadeusConfig
	SkyScanner SkyScannerConfig

	// KiwiEnabled registers the tertiary stub adapter.
	KiwiEnabled bool `env:"PROVIDER_KIWI_ENABLED" envDefault:"true"`
}

// AmadeusConfig holds the primary provider's OAuth credentials and endpoints.
// The provider is enabled when both credentials are set.
type AmadeusConfig struct {
	ClientID     string        `env:"AMADEUS_CLIENT_ID" envDefault:""`
	ClientSecret string        `env:"AMADEUS_CLIENT_SECRET" envDefault:""`
	TokenURL     string        `env:"AMADEUS_TOKEN_URL" envDefault:"https://api.amadeus.com/v1/security/oauth2/token"`
	BaseURL      string        `env:"AMADEUS_BASE_URL" envDefault:"https://api.amadeus.com"`
	HTTPTimeout  time.Duration `env:"AMADEUS_HTTP_TIMEOUT" envDefault:"10s"`
}

// SkyScannerConfig holds the secondary provider's key and host list. The
// provider is enabled when the API key is set.
type SkyScannerConfig struct {
	APIKey      string        `env:"SKYSCANNER_API_KEY" envDefault:""`
	Hosts       []string      `env:"SKYSCANNER_HOSTS" envSeparator:","`
	HTTPTimeout time.Duration `env:"SKYSCANNER_HTTP_TIMEOUT" envDefault:"10s"`
}

// RateLimitConfig holds the per-provider token bucket settings.
type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	BurstSize         int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables. A .env file is loaded
// first when present.
func Load() (*Config, error) {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics. Use in main() where configuration
// is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Timeouts.PerProvider <= 0 {
		return fmt.Errorf("TIMEOUT_PER_PROVIDER must be positive")
	}

	if cfg.Cache.Enabled {
		if cfg.Cache.TTL <= 0 {
			return fmt.Errorf("CACHE_TTL must be positive")
		}
		switch cfg.Cache.Backend {
		case "memory":
		case "redis":
			if cfg.Cache.RedisAddr == "" {
				return fmt.Errorf("CACHE_REDIS_ADDR is required when CACHE_BACKEND is redis")
			}
		default:
			return fmt.Errorf("CACHE_BACKEND must be memory or redis, got %q", cfg.Cache.Backend)
		}
	}

	if cfg.Providers.Amadeus.enabled() {
		if cfg.Providers.Amadeus.TokenURL == "" {
			return fmt.Errorf("AMADEUS_TOKEN_URL is required when amadeus credentials are set")
		}
		if cfg.Providers.Amadeus.BaseURL == "" {
			return fmt.Errorf("AMADEUS_BASE_URL is required when amadeus credentials are set")
		}
	}
	if cfg.Providers.SkyScanner.enabled() && len(cfg.Providers.SkyScanner.Hosts) == 0 {
		return fmt.Errorf("SKYSCANNER_HOSTS is required when SKYSCANNER_API_KEY is set")
	}

	if cfg.RateLimits.RequestsPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if cfg.RateLimits.BurstSize < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

func (c AmadeusConfig) enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func (c SkyScannerConfig) enabled() bool {
	return c.APIKey != ""
}

// AmadeusEnabled reports whether the primary provider has credentials.
func (c *Config) AmadeusEnabled() bool {
	return c.Providers.Amadeus.enabled()
}

// SkyScannerEnabled reports whether the secondary provider has credentials.
func (c *Config) SkyScannerEnabled() bool {
	return c.Providers.SkyScanner.enabled()
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
