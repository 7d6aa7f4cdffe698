// Command bdr-collector downloads the metadata of H.P. Lovecraft letters from
// the Brown Digital Repository and writes one JSON file per record.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Sternrassler/bdr-collector/internal/collector"
	"github.com/Sternrassler/bdr-collector/internal/config"
	"github.com/Sternrassler/bdr-collector/pkg/client"
	"github.com/Sternrassler/bdr-collector/pkg/logging"
	"github.com/Sternrassler/bdr-collector/pkg/metrics"
	"github.com/Sternrassler/bdr-collector/pkg/pacing"
	"github.com/Sternrassler/bdr-collector/pkg/query"
	"github.com/Sternrassler/bdr-collector/pkg/storage"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Optional overrides for local runs; a missing file is not an error.
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: os.Stdout,
	})

	driver, cleanup, err := newDriver(cfg, pacing.DefaultConfig(), logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to start collector")
		return 1
	}
	defer cleanup()

	runErr := driver.Run(context.Background())

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn().Err(err).Msg("Failed to write metrics")
		}
	}

	if runErr != nil {
		logger.Error().Err(runErr).Msg("Run aborted")
		return 1
	}
	return 0
}

// newDriver wires the pipeline. The returned cleanup func releases the Redis
// connection when one was opened.
func newDriver(cfg config.Config, pause pacing.Config, logger zerolog.Logger) (*collector.Driver, func(), error) {
	cleanup := func() {}

	clientCfg := client.DefaultConfig()
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.UserAgent = cfg.UserAgent
	clientCfg.CacheTTL = cfg.CacheTTL

	if cfg.RedisURL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.RedisURL,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			redisClient.Close()
			return nil, cleanup, fmt.Errorf("connect to redis at %s: %w", cfg.RedisURL, err)
		}
		logger.Info().Str("redis", cfg.RedisURL).Dur("ttl", cfg.CacheTTL).Msg("Page cache enabled")

		clientCfg.Redis = redisClient
		cleanup = func() { redisClient.Close() }
	}

	fail := func(err error) (*collector.Driver, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	bdr, err := client.New(clientCfg, logging.Component(logger, "bdr-client"))
	if err != nil {
		return fail(fmt.Errorf("create client: %w", err))
	}

	store, err := storage.New(cfg.OutputDir)
	if err != nil {
		return fail(fmt.Errorf("create store: %w", err))
	}

	pacer, err := pacing.New(pause, logging.Component(logger, "pacing"))
	if err != nil {
		return fail(fmt.Errorf("create pacer: %w", err))
	}

	c, err := collector.New(bdr, store, pacer, collector.DefaultConfig(), logging.Component(logger, "collector"))
	if err != nil {
		return fail(fmt.Errorf("create collector: %w", err))
	}

	return collector.NewDriver(c, query.Genres(), logging.Component(logger, "driver")), cleanup, nil
}
