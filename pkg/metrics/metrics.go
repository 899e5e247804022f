package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wingcfg_api_requests_total",
			Help: "Number of API requests",
		},
		[]string{"method", "path", "status"},
	)
	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wingcfg_api_latency_seconds",
			Help:    "API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	RegistryFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wingcfg_language_registry_fallbacks_total",
			Help: "Times the language registry degraded to the fallback set",
		},
	)
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wingcfg_cache_hits_total",
			Help: "Mobile payload cache hits",
		},
		[]string{"collection"},
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wingcfg_cache_misses_total",
			Help: "Mobile payload cache misses",
		},
		[]string{"collection"},
	)
	EventsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wingcfg_events_emitted_total",
			Help: "Config change events dispatched",
		},
		[]string{"name"},
	)
	AccessDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wingcfg_access_denied_total",
			Help: "Requests rejected by the role policy",
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(
		APIRequests,
		APILatency,
		RegistryFallbacks,
		CacheHits,
		CacheMisses,
		EventsEmitted,
		AccessDenied,
	)
}
