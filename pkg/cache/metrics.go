package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bdr_cache_hits_total",
			Help: "Total number of BDR page cache hits",
		},
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bdr_cache_misses_total",
			Help: "Total number of BDR page cache misses",
		},
	)

	// CacheSize tracks bytes moved through the cache
	CacheSize = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bdr_cache_size_bytes",
			Help: "Bytes read from or written to the BDR page cache",
		},
		[]string{"operation"}, // "get", "set"
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bdr_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
