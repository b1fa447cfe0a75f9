package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/flight-engine/internal/domain"
	"github.com/wanderplan/flight-engine/internal/infrastructure/timeutil"
)

func sampleFlights() []domain.Flight {
	return []domain.Flight{
		{ID: "f1", FlightNumber: "AF-1234", Price: domain.PriceInfo{Amount: 420, Currency: "USD"}},
		{ID: "f2", FlightNumber: "DL-402", Price: domain.PriceInfo{Amount: 510, Currency: "USD"}},
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(5*time.Minute, nil)

	got, ok := c.Get(ctx, "sig")
	assert.False(t, ok)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "sig", sampleFlights()))

	got, ok = c.Get(ctx, "sig")
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "f1", got[0].ID)
	assert.Equal(t, "f2", got[1].ID)
}

func TestMemory_LazyExpiry(t *testing.T) {
	ctx := context.Background()
	clock := timeutil.NewMockClock(time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC))
	c := NewMemory(5*time.Minute, clock)

	require.NoError(t, c.Set(ctx, "sig", sampleFlights()))

	// Just inside the TTL.
	clock.Advance(4 * time.Minute)
	_, ok := c.Get(ctx, "sig")
	assert.True(t, ok)

	// Past the TTL: the read both misses and evicts.
	clock.Advance(2 * time.Minute)
	_, ok = c.Get(ctx, "sig")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemory_EmptyListNeverCached(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute, nil)

	require.NoError(t, c.Set(ctx, "sig", nil))
	require.NoError(t, c.Set(ctx, "sig", []domain.Flight{}))

	_, ok := c.Get(ctx, "sig")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemory_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute, nil)
	require.NoError(t, c.Set(ctx, "sig", sampleFlights()))

	first, ok := c.Get(ctx, "sig")
	require.True(t, ok)
	first[0].ID = "mutated"

	second, ok := c.Get(ctx, "sig")
	require.True(t, ok)
	assert.Equal(t, "f1", second[0].ID)
}

func TestMemory_SetRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	clock := timeutil.NewMockClock(time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC))
	c := NewMemory(5*time.Minute, clock)

	require.NoError(t, c.Set(ctx, "sig", sampleFlights()))
	clock.Advance(4 * time.Minute)
	require.NoError(t, c.Set(ctx, "sig", sampleFlights()))
	clock.Advance(4 * time.Minute)

	_, ok := c.Get(ctx, "sig")
	assert.True(t, ok)
}

func TestNoOp(t *testing.T) {
	ctx := context.Background()
	c := NewNoOp()

	require.NoError(t, c.Set(ctx, "sig", sampleFlights()))
	_, ok := c.Get(ctx, "sig")
	assert.False(t, ok)
	assert.NoError(t, c.Close())
}
