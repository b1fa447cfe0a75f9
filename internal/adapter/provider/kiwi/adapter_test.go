package kiwi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/flight-engine/internal/domain"
)

func TestAdapter_Name(t *testing.T) {
	assert.Equal(t, domain.SourceKiwi, NewAdapter().Name())
}

func TestAdapter_Search_AlwaysEmpty(t *testing.T) {
	flights, err := NewAdapter().Search(context.Background(), domain.SearchRequest{
		Origin:        "JFK",
		Destination:   "CDG",
		DepartureDate: "2026-10-01",
		Adults:        1,
	})

	require.NoError(t, err)
	assert.NotNil(t, flights)
	assert.Empty(t, flights)
}
