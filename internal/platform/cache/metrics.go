package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// hits counts lookups served from the cache store.
	hits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_cache_hits_total",
		Help: "Total number of cache hits",
	})

	// misses counts lookups that fell through to an upstream fetch.
	misses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_cache_misses_total",
		Help: "Total number of cache misses",
	})

	// lookupErrors counts Redis read failures (degraded to misses).
	lookupErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_cache_lookup_errors_total",
		Help: "Total number of cache lookup errors treated as misses",
	})

	// storeErrors counts best-effort writes that failed.
	storeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_cache_store_errors_total",
		Help: "Total number of cache store errors that were swallowed",
	})
)
