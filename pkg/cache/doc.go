// Package cache stores raw BDR search pages in Redis.
//
// The cache is optional. When the collector is started with a Redis address,
// successful page bodies are stored under a deterministic key built from the
// endpoint and query parameters, and identical requests made before the entry
// expires are answered from Redis. Records are still written to storage for
// every page, cached or not.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	pages, err := cache.NewPageCache(redisClient, time.Hour)
//
//	key := cache.CacheKey{
//		Endpoint:    "/api/search/",
//		QueryParams: url.Values{"q": {query}, "start": {"0"}, "rows": {"100"}},
//	}
//
//	page, err := pages.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fetch from BDR, then
//		_ = pages.Put(ctx, key, body)
//	}
//
// # Metrics
//
//   - bdr_cache_hits_total - Cache hits
//   - bdr_cache_misses_total - Cache misses
//   - bdr_cache_size_bytes - Bytes written to or read from the cache
//   - bdr_cache_errors_total{operation} - Cache operation errors
package cache
