// Package metrics provides the Prometheus registry reference for the
// collector and a text-format dump for batch runs.
// All metrics are defined in their respective packages (client, cache,
// pacing, collector) and registered via promauto.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the collector.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the gatherer WriteTextfile reads from.
var Gatherer = prometheus.DefaultGatherer

// WriteTextfile writes all registered metrics to path in the Prometheus text
// format, suitable for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - bdr_requests_total{status} (Counter): Requests by HTTP status, "transport_error" or "cache_hit"
//   - bdr_request_duration_seconds (Histogram): Request duration
//   - bdr_errors_total{kind} (Counter): Errors by kind (transport, http_status, parse)
//
// Cache Metrics (pkg/cache):
//   - bdr_cache_hits_total (Counter): Page cache hits
//   - bdr_cache_misses_total (Counter): Page cache misses
//   - bdr_cache_size_bytes{operation} (Counter): Bytes read/written
//   - bdr_cache_errors_total{operation} (Counter): Cache operation errors
//
// Pacing Metrics (pkg/pacing):
//   - bdr_pause_seconds (Histogram): Pause between page requests
//
// Collector Metrics (internal/collector):
//   - bdr_pages_total{genre} (Counter): Non-empty pages processed
//   - bdr_records_saved_total{genre} (Counter): Records written
//   - bdr_genres_total{outcome} (Counter): Genre fetches by outcome
//
// Example Prometheus Queries:
//
//   # Records saved per genre
//   sum by (genre) (bdr_records_saved_total)
//
//   # Genres that stopped on an error
//   bdr_genres_total{outcome!="complete"}
