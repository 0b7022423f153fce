package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "weve_market_"

// Resource family constants
const (
	FamilyStationOrders   = "station_orders"
	FamilyStructureOrders = "structure_orders"
	FamilyAdjustedPrice   = "adjusted_price"
	FamilySystemIndex     = "system_index"
)

// Cache lookup result constants
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

var (
	// RPC request counter per operation
	// Cardinality: 3 (market_orders, adjusted_price, system_index)
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "rpc_requests_total",
			Help: "Total number of RPC requests per operation",
		},
		[]string{"operation"},
	)

	// Upstream ESI request counter
	// Cardinality: ~12 (4 families × a handful of statuses)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "upstream_requests_total",
			Help: "Total number of HTTP requests to ESI per resource family",
		},
		[]string{"family", "status"},
	)

	// Cache lookup counter
	// Cardinality: 8 (4 families × hit/miss)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_lookups_total",
			Help: "Total number of cache lookups per resource family",
		},
		[]string{"family", "result"},
	)

	// Upstream fetch duration per resource family
	// Cardinality: 4 (number of families)
	FetchDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "fetch_duration_seconds",
			Help: "Time taken to fetch and repopulate one cache slot from ESI",
		},
		[]string{"family"},
	)

	// Cache size per resource family
	// Cardinality: 4 (number of families)
	CacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "cache_size",
			Help: "Number of cached entries per resource family",
		},
		[]string{"family"},
	)
)

// RecordRPCRequest records one inbound RPC call
func RecordRPCRequest(operation string) {
	RPCRequestsTotal.WithLabelValues(operation).Inc()
}

// MetricsWriter records metrics for a single resource family
type MetricsWriter struct {
	family string
}

// NewMetricsWriter creates a new MetricsWriter for the specified resource family
func NewMetricsWriter(family string) *MetricsWriter {
	return &MetricsWriter{
		family: family,
	}
}

// GetFamily returns the resource family name
func (mw *MetricsWriter) GetFamily() string {
	return mw.family
}

// RecordUpstreamRequest records an ESI request outcome
func (mw *MetricsWriter) RecordUpstreamRequest(status string) {
	UpstreamRequestsTotal.WithLabelValues(mw.family, status).Inc()
}

// RecordCacheLookup records a cache hit or miss
func (mw *MetricsWriter) RecordCacheLookup(hit bool) {
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	CacheLookupsTotal.WithLabelValues(mw.family, result).Inc()
}

// RecordFetch records the duration of one fetch-and-repopulate cycle
func (mw *MetricsWriter) RecordFetch(start time.Time) {
	duration := time.Since(start)
	FetchDurationHistogram.WithLabelValues(mw.family).Observe(duration.Seconds())
	log.Printf("Metrics: %s fetch took %.2fs", mw.family, duration.Seconds())
}

// RecordCacheSize records the number of cached entries
func (mw *MetricsWriter) RecordCacheSize(size int) {
	CacheSizeGauge.WithLabelValues(mw.family).Set(float64(size))
}
