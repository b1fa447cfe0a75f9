// Package kiwi is a placeholder adapter for the tertiary provider. The
// upstream integration is not live yet, so the adapter is registered but
// always comes back empty. Keeping it registered exercises the orchestrator's
// merge path with a silent source and reserves the source's dedupe priority.
package kiwi

import (
	"context"

	"github.com/wanderplan/flight-engine/internal/domain"
)

// Adapter is the stub tertiary provider.
type Adapter struct{}

// NewAdapter creates the stub adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Name implements domain.FlightProvider.
func (a *Adapter) Name() domain.Source {
	return domain.SourceKiwi
}

// Search implements domain.FlightProvider. It always succeeds with no
// flights.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Flight, error) {
	return []domain.Flight{}, nil
}

var _ domain.FlightProvider = (*Adapter)(nil)
