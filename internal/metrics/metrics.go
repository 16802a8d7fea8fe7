package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch results used as label values of FetchesTotal.
const (
	FetchResultSuccess = "success"
	FetchResultError   = "error"
)

// Metrics holds collectors of rates provider.
type Metrics struct {
	HTTPRequestsTotal *prometheus.CounterVec

	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	FetchesTotal         *prometheus.CounterVec
	FetchDuration        prometheus.Histogram
	PersistFailuresTotal prometheus.Counter
}

// New registers collectors on the given registerer and returns them.
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_beacon_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		CacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "currency_beacon_cache_hits_total",
				Help: "Total number of rate lookups served from fresh cached rates",
			},
		),

		CacheMissesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "currency_beacon_cache_misses_total",
				Help: "Total number of rate lookups which required fetching rates",
			},
		),

		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_beacon_fetches_total",
				Help: "Total number of rates fetches from Currency Beacon API",
			},
			[]string{"result"},
		),

		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "currency_beacon_fetch_duration_seconds",
				Help:    "Duration of rates fetches from Currency Beacon API in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		PersistFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "currency_beacon_persist_failures_total",
				Help: "Total number of rates snapshots which were not persisted",
			},
		),
	}
}
