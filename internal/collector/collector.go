// Package collector pages through BDR search results for each genre and
// writes every returned record to storage.
package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/bdr-collector/pkg/client"
	"github.com/Sternrassler/bdr-collector/pkg/query"
	"github.com/Sternrassler/bdr-collector/pkg/record"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	bdrPagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bdr_pages_total",
		Help: "Non-empty result pages processed by genre",
	}, []string{"genre"})

	bdrRecordsSavedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bdr_records_saved_total",
		Help: "Records written to storage by genre",
	}, []string{"genre"})

	bdrGenresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bdr_genres_total",
		Help: "Genre fetches finished by outcome (complete, transport, http_status, parse)",
	}, []string{"outcome"})
)

// Searcher fetches one page of search results.
type Searcher interface {
	Search(ctx context.Context, params client.SearchParams) (*client.SearchResponse, error)
}

// Store persists a single record and returns where it was written.
type Store interface {
	Save(rec record.Record) (string, error)
}

// Pauser blocks between page requests.
type Pauser interface {
	Pause(ctx context.Context) (time.Duration, error)
}

// Config holds collector settings.
type Config struct {
	// Collection is the BDR collection searched.
	Collection query.Collection

	// PageSize is the number of rows per request and the offset step.
	PageSize int
}

// DefaultConfig returns the Lovecraft collection with 100-row pages.
func DefaultConfig() Config {
	return Config{
		Collection: query.LovecraftCollection,
		PageSize:   client.DefaultPageSize,
	}
}

// Collector fetches and saves all records of a genre.
type Collector struct {
	searcher Searcher
	store    Store
	pauser   Pauser
	config   Config
	logger   zerolog.Logger
}

// New creates a Collector.
func New(searcher Searcher, store Store, pauser Pauser, cfg Config, logger zerolog.Logger) (*Collector, error) {
	if searcher == nil {
		return nil, fmt.Errorf("searcher is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if pauser == nil {
		return nil, fmt.Errorf("pauser is required")
	}
	if cfg.Collection == "" {
		return nil, fmt.Errorf("collection is required")
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("page_size must be > 0 (got %d)", cfg.PageSize)
	}

	return &Collector{
		searcher: searcher,
		store:    store,
		pauser:   pauser,
		config:   cfg,
		logger:   logger,
	}, nil
}

// FetchAndSave retrieves every page of results for genre and saves each
// record. Remote failures (transport, HTTP status, parse) end the genre and
// are logged, not returned. Storage failures are returned and should stop
// the run.
func (c *Collector) FetchAndSave(ctx context.Context, genre string) error {
	logger := c.logger.With().Str("genre", genre).Logger()
	q := query.Build(c.config.Collection, genre)

	pages, saved := 0, 0
	outcome := "complete"

	for start := 0; ; start += c.config.PageSize {
		logger.Debug().Int("start", start).Msg("Fetching page")

		page, err := c.searcher.Search(ctx, client.SearchParams{
			Query: q,
			Start: start,
			Rows:  c.config.PageSize,
		})
		if err != nil {
			var searchErr *client.SearchError
			if !errors.As(err, &searchErr) {
				return fmt.Errorf("genre %q at start %d: %w", genre, start, err)
			}
			outcome = string(searchErr.Kind)
			logRemoteError(logger, searchErr, start)
			break
		}

		logger.Debug().Int("docs", len(page.Docs)).Msg("Page received")

		if len(page.Docs) == 0 {
			break
		}

		for _, rec := range page.Docs {
			path, err := c.store.Save(rec)
			if err != nil {
				logger.Error().Err(err).Str("pid", rec.PID()).Msg("Failed to save record")
				return fmt.Errorf("genre %q: save record %q: %w", genre, rec.PID(), err)
			}
			saved++
			bdrRecordsSavedTotal.WithLabelValues(genre).Inc()
			logger.Debug().
				Str("pid", rec.PID()).
				Int("fields", rec.Len()).
				Str("path", path).
				Msg("Saved record")
		}
		pages++
		bdrPagesTotal.WithLabelValues(genre).Inc()

		if _, err := c.pauser.Pause(ctx); err != nil {
			return fmt.Errorf("genre %q: %w", genre, err)
		}
	}

	bdrGenresTotal.WithLabelValues(outcome).Inc()
	logger.Info().
		Int("pages", pages).
		Int("records", saved).
		Str("outcome", outcome).
		Msg("Completed processing genre")

	return nil
}

func logRemoteError(logger zerolog.Logger, err *client.SearchError, start int) {
	event := logger.Error().Err(err).Str("error_kind", string(err.Kind)).Int("start", start)

	switch err.Kind {
	case client.KindHTTPStatus:
		event.Int("status_code", err.StatusCode).Msg("Request failed with status code")
	case client.KindParse:
		event.Msg("Data parsing error")
	default:
		event.Msg("Request error")
	}
}
