package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wanderplan/flight-engine/internal/domain"
)

// RedisConfig holds the connection settings for the Redis-backed cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis is a Cache backed by a Redis instance. It gives multiple engine
// instances a shared cache population, which the in-process Memory cache
// cannot.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Redis{client: client, ttl: cfg.TTL}, nil
}

// Get returns the cached flights for the signature. Any transport or decode
// error is treated as a miss.
func (r *Redis) Get(ctx context.Context, signature string) ([]domain.Flight, bool) {
	data, err := r.client.Get(ctx, signature).Bytes()
	if err != nil {
		return nil, false
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, false
	}
	if len(flights) == 0 {
		return nil, false
	}
	return flights, true
}

// Set stores the flights under the signature with the configured TTL.
func (r *Redis) Set(ctx context.Context, signature string, flights []domain.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	data, err := json.Marshal(flights)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, signature, data, r.ttl).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
