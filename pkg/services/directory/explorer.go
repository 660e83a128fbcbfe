// Package directory exposes the fleet vessel listing backed by the
// telemetry store, with an in-process cache so interactive surfaces
// are not charged one upstream query per page load.
package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog"
)

const (
	vesselNamesKey = "vessel_names"
	// Fleet composition changes rarely; an hour of staleness is fine.
	vesselNamesTTL = time.Hour
)

// TelemetryDirectory is the slice of the telemetry store the explorer
// needs.
type TelemetryDirectory interface {
	ListVesselNames(ctx context.Context) ([]string, error)
}

type Explorer struct {
	store TelemetryDirectory
	cache *ristretto.Cache
}

func NewExplorer(store TelemetryDirectory) (*Explorer, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1000,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create directory cache: %w", err)
	}

	return &Explorer{
		store: store,
		cache: cache,
	}, nil
}

// ListVesselNames returns the known vessel names, served from cache
// when a fresh entry exists.
func (e *Explorer) ListVesselNames(ctx context.Context) ([]string, error) {
	if cached, ok := e.cache.Get(vesselNamesKey); ok {
		if names, ok := cached.([]string); ok {
			return append([]string(nil), names...), nil
		}
	}

	names, err := e.store.ListVesselNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vessels: %w", err)
	}

	e.cache.SetWithTTL(vesselNamesKey, names, int64(len(names)+1), vesselNamesTTL)
	e.cache.Wait()

	zerolog.Ctx(ctx).Debug().Int("vessels", len(names)).Msg("vessel directory refreshed")
	return append([]string(nil), names...), nil
}

// Refresh drops the cached listing so the next call hits the store.
func (e *Explorer) Refresh() {
	e.cache.Del(vesselNamesKey)
}
