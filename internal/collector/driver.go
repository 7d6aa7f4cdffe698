package collector

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// GenreFetcher processes every page of one genre.
type GenreFetcher interface {
	FetchAndSave(ctx context.Context, genre string) error
}

// Driver runs a GenreFetcher over a fixed list of genres, in order.
type Driver struct {
	fetcher GenreFetcher
	genres  []string
	logger  zerolog.Logger
}

// NewDriver creates a Driver for genres.
func NewDriver(fetcher GenreFetcher, genres []string, logger zerolog.Logger) *Driver {
	return &Driver{
		fetcher: fetcher,
		genres:  append([]string(nil), genres...),
		logger:  logger,
	}
}

// Run fetches each genre sequentially. It stops at the first error returned
// by the fetcher.
func (d *Driver) Run(ctx context.Context) error {
	for _, genre := range d.genres {
		d.logger.Info().Str("genre", genre).Msg("Processing genre")

		if err := d.fetcher.FetchAndSave(ctx, genre); err != nil {
			return fmt.Errorf("fetch genre %q: %w", genre, err)
		}
	}

	d.logger.Info().Int("genres", len(d.genres)).Msg("All genres processed")
	return nil
}
