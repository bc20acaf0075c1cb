package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Balance fetch and aggregation metrics, partitioned by chain + provider.

var (
	FetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quantora",
		Subsystem: "fetcher",
		Name:      "requests_total",
		Help:      "Total native balance fetches by outcome",
	}, []string{"chain", "provider", "status"})

	FetchLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quantora",
		Subsystem: "fetcher",
		Name:      "duration_seconds",
		Help:      "Native balance fetch duration",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"chain", "provider"})

	UpstreamRateLimitWaits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quantora",
		Subsystem: "upstream",
		Name:      "rate_limit_waits_total",
		Help:      "Requests delayed by the per-provider limiter",
	}, []string{"provider"})

	AggregationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quantora",
		Subsystem: "portfolio",
		Name:      "aggregations_total",
		Help:      "Total portfolio aggregations by outcome",
	}, []string{"kind", "status"})

	PriceLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quantora",
		Subsystem: "price",
		Name:      "lookups_total",
		Help:      "Price lookups by source and result",
	}, []string{"source", "result"})
)

var registerOnce sync.Once

// MustRegisterMetrics registers all collectors with the default registry. Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(FetchTotal, FetchLatency, UpstreamRateLimitWaits, AggregationsTotal, PriceLookups)
	})
}
