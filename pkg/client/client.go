// Package client provides the BDR search API client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sternrassler/bdr-collector/pkg/cache"
	"github.com/Sternrassler/bdr-collector/pkg/record"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for search requests.
var (
	bdrRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bdr_requests_total",
		Help: "Total BDR search requests by status",
	}, []string{"status"})

	bdrRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bdr_request_duration_seconds",
		Help:    "BDR search request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	})

	bdrErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bdr_errors_total",
		Help: "Total BDR search errors by kind",
	}, []string{"kind"})
)

const (
	// DefaultBaseURL is the BDR search endpoint.
	DefaultBaseURL = "https://repository.library.brown.edu/api/search/"

	// DefaultUserAgent identifies the collector to the BDR.
	DefaultUserAgent = "bdr-collector/0.1.0"

	// DefaultPageSize is the number of rows requested per page.
	DefaultPageSize = 100

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	// DefaultCacheTTL is how long cached pages stay valid.
	DefaultCacheTTL = 1 * time.Hour
)

// Client is the BDR search client.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	cache      *cache.PageCache
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the search endpoint.
	BaseURL string

	// UserAgent header sent with every request.
	UserAgent string

	// Timeout per request.
	Timeout time.Duration

	// Redis enables the page cache when non-nil.
	Redis *redis.Client

	// CacheTTL is the lifetime of cached pages.
	CacheTTL time.Duration
}

// DefaultConfig returns the configuration used against the live BDR.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
		CacheTTL:  DefaultCacheTTL,
	}
}

// New creates a new BDR client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("base url must be absolute (got %q)", cfg.BaseURL)
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: baseURL,
		config:  cfg,
		logger:  logger,
	}

	if cfg.Redis != nil {
		pages, err := cache.NewPageCache(cfg.Redis, cfg.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("create page cache: %w", err)
		}
		c.cache = pages
	}

	return c, nil
}

// SearchParams are the query parameters of one page request.
type SearchParams struct {
	Query string
	Start int
	Rows  int
}

// Values encodes the parameters as q, start and rows.
func (p SearchParams) Values() url.Values {
	return url.Values{
		"q":     []string{p.Query},
		"start": []string{strconv.Itoa(p.Start)},
		"rows":  []string{strconv.Itoa(p.Rows)},
	}
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	// NumFound is the total hit count reported by the server.
	NumFound int

	// Start is the offset reported by the server.
	Start int

	// Docs are the records on this page. Empty means no more pages.
	Docs []record.Record
}

// Search fetches one page of results. Every returned error is a *SearchError.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	values := params.Values()

	cacheKey := cache.CacheKey{
		Endpoint:    c.baseURL.Path,
		QueryParams: values,
	}

	if c.cache != nil {
		if page, ok := c.fromCache(ctx, cacheKey); ok {
			return page, nil
		}
	}

	body, err := c.get(ctx, values)
	if err != nil {
		return nil, c.observeError(err)
	}

	page, err := decodePage(body)
	if err != nil {
		return nil, c.observeError(err)
	}

	c.logger.Debug().Int("num_found", page.NumFound).Int("docs", len(page.Docs)).Msg("Decoded page")

	if c.cache != nil {
		if err := c.cache.Put(ctx, cacheKey, body); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to cache page")
		}
	}

	return page, nil
}

// get issues the GET request and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, values url.Values) ([]byte, error) {
	u := *c.baseURL
	u.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, transportError("create request", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Info().
		Str("url", c.config.BaseURL).
		Str("q", values.Get("q")).
		Str("start", values.Get("start")).
		Str("rows", values.Get("rows")).
		Msg("GET")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	bdrRequestDuration.Observe(time.Since(startTime).Seconds())
	if err != nil {
		bdrRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, transportError("execute request", err)
	}
	defer resp.Body.Close()

	bdrRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	c.logger.Debug().Int("status_code", resp.StatusCode).Msg("Response received")

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, statusError(resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError("read response", err)
	}

	return body, nil
}

func (c *Client) fromCache(ctx context.Context, key cache.CacheKey) (*SearchResponse, bool) {
	cached, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.Warn().Err(err).Msg("Cache get error")
		}
		return nil, false
	}

	page, err := decodePage(cached.Body)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Discarding undecodable cached page")
		_ = c.cache.Delete(ctx, key)
		return nil, false
	}

	bdrRequestsTotal.WithLabelValues("cache_hit").Inc()
	c.logger.Debug().
		Str("key", key.String()).
		Dur("age", cached.Age()).
		Int("docs", len(page.Docs)).
		Msg("Page served from cache")
	return page, true
}

func (c *Client) observeError(err error) error {
	if kind, ok := KindOf(err); ok {
		bdrErrorsTotal.WithLabelValues(string(kind)).Inc()
	}
	return err
}

// decodePage extracts response.docs from a search body. A JSON null docs
// value is treated as an empty page.
func decodePage(body []byte) (*SearchResponse, error) {
	var envelope struct {
		Response *struct {
			NumFound int             `json:"numFound"`
			Start    int             `json:"start"`
			Docs     json.RawMessage `json:"docs"`
		} `json:"response"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, parseError("decode body", err)
	}
	if envelope.Response == nil {
		return nil, parseError("", ErrMissingResponse)
	}
	if len(envelope.Response.Docs) == 0 {
		return nil, parseError("", ErrMissingDocs)
	}

	page := &SearchResponse{
		NumFound: envelope.Response.NumFound,
		Start:    envelope.Response.Start,
	}

	if bytes.Equal(bytes.TrimSpace(envelope.Response.Docs), []byte("null")) {
		return page, nil
	}

	if err := json.Unmarshal(envelope.Response.Docs, &page.Docs); err != nil {
		return nil, parseError("decode docs", err)
	}

	return page, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
