package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is built without a meter
var ErrMeterNil = errors.New("telemetry: meter is nil")

// Snapshot cache lookup outcomes
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// CatalogMetrics counts product resolutions and snapshot cache lookups.
// A nil *CatalogMetrics records nothing.
type CatalogMetrics struct {
	resolutions  *Counter
	cacheLookups *Counter
	combinations *Histogram
}

// NewCatalogMetrics registers the catalog instruments on meter
func NewCatalogMetrics(meter metric.Meter) (*CatalogMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	resolutions, err := NewCounter(meter,
		"catalog_product_resolutions_total",
		"Products resolved into options, price range and availability",
		"{product}",
	)
	if err != nil {
		return nil, err
	}
	cacheLookups, err := NewCounter(meter,
		"catalog_snapshot_cache_lookups_total",
		"Product snapshot cache lookups by result",
		"{lookup}",
	)
	if err != nil {
		return nil, err
	}
	combinations, err := NewHistogram(meter, HistogramOpts{
		Name:        "catalog_product_combinations",
		Description: "Combination rows per resolved product",
		Unit:        "{combination}",
		Boundaries:  []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})
	if err != nil {
		return nil, err
	}

	return &CatalogMetrics{
		resolutions:  resolutions,
		cacheLookups: cacheLookups,
		combinations: combinations,
	}, nil
}

// RecordResolution counts one resolved product for an operation
// ("detail", "availability", "list", "related")
func (m *CatalogMetrics) RecordResolution(ctx context.Context, operation string, purchasable bool, combinations int) {
	if m == nil {
		return
	}
	m.resolutions.Inc(ctx, AttrOperation.String(operation), AttrPurchasable.Bool(purchasable))
	m.combinations.Record(ctx, float64(combinations), AttrOperation.String(operation))
}

// RecordCacheLookup counts one snapshot cache lookup
func (m *CatalogMetrics) RecordCacheLookup(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.cacheLookups.Inc(ctx, AttrCacheResult.String(result))
}
