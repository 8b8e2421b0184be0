// Package monitoring exposes Prometheus metrics for the catalog service.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "Total HTTP requests per route and status",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "Duration of HTTP requests per route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	snapshotLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_snapshot_loads_total",
			Help: "Collection snapshot loads per result",
		},
		[]string{"collection", "result"},
	)

	snapshotRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_snapshot_records",
			Help: "Records in the last decoded snapshot of each collection",
		},
		[]string{"collection"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Snapshot cache lookups per outcome",
		},
		[]string{"collection", "outcome"},
	)
)

// Snapshot load results.
const (
	ResultOK          = "ok"
	ResultUnavailable = "unavailable"
	ResultInvalid     = "invalid"
)

// Cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// TrackRequest records one served HTTP request.
func TrackRequest(route, method string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// TrackSnapshotLoad records a snapshot load. records is only reported on success.
func TrackSnapshotLoad(collection, result string, records int) {
	snapshotLoads.WithLabelValues(collection, result).Inc()
	if result == ResultOK {
		snapshotRecords.WithLabelValues(collection).Set(float64(records))
	}
}

// TrackCacheLookup records the outcome of a snapshot cache lookup.
func TrackCacheLookup(collection, outcome string) {
	cacheLookups.WithLabelValues(collection, outcome).Inc()
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
