package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// KeyPrefix namespaces all cache keys.
const KeyPrefix = "bdr"

// CacheKey represents a unique identifier for a cached search response.
type CacheKey struct {
	// Endpoint is the API path (e.g., "/api/search/")
	Endpoint string

	// QueryParams are the request query parameters (q, start, rows)
	QueryParams url.Values
}

// String generates a deterministic cache key string.
// Format: bdr:endpoint:param1=val1:param2=val2
//
// Example:
//
//	bdr:api/search:q=genre_local:"typed letter":rows=100:start=0
func (k CacheKey) String() string {
	parts := []string{KeyPrefix}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Query params sorted for determinism
	if len(k.QueryParams) > 0 {
		queryKeys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.QueryParams.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}
