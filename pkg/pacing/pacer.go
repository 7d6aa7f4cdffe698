// Package pacing spaces out requests to the BDR API with a random pause.
package pacing

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var bdrPauseSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "bdr_pause_seconds",
	Help:    "Pause between BDR page requests in seconds",
	Buckets: []float64{0.5, 1, 1.25, 1.5, 1.75, 2, 3},
})

// Config holds the pause interval. Pauses are drawn uniformly from [Min, Max).
type Config struct {
	Min time.Duration
	Max time.Duration
}

// DefaultConfig returns the 1-2 second interval used against the BDR API.
func DefaultConfig() Config {
	return Config{
		Min: 1 * time.Second,
		Max: 2 * time.Second,
	}
}

// Pacer sleeps for a random duration between page requests.
type Pacer struct {
	config Config
	random func() float64
	sleep  func(ctx context.Context, d time.Duration) error
	logger zerolog.Logger
}

// New creates a Pacer.
func New(cfg Config, logger zerolog.Logger) (*Pacer, error) {
	if cfg.Min < 0 {
		return nil, fmt.Errorf("min pause must be >= 0 (got %s)", cfg.Min)
	}
	if cfg.Max < cfg.Min {
		return nil, fmt.Errorf("max pause %s is less than min pause %s", cfg.Max, cfg.Min)
	}

	return &Pacer{
		config: cfg,
		random: rand.Float64,
		sleep:  sleepContext,
		logger: logger,
	}, nil
}

// Next returns the next pause duration without sleeping.
func (p *Pacer) Next() time.Duration {
	span := float64(p.config.Max - p.config.Min)
	return p.config.Min + time.Duration(p.random()*span)
}

// Pause blocks for a random duration in [Min, Max) and returns it.
// It returns early with an error if ctx is cancelled.
func (p *Pacer) Pause(ctx context.Context) (time.Duration, error) {
	d := p.Next()

	p.logger.Debug().
		Str("pause", fmt.Sprintf("%.2fs", d.Seconds())).
		Msg("Pausing before next page")

	if err := p.sleep(ctx, d); err != nil {
		return d, err
	}

	bdrPauseSeconds.Observe(d.Seconds())
	return d, nil
}

// SetRandom replaces the random source (for testing). fn must return values in [0, 1).
func (p *Pacer) SetRandom(fn func() float64) {
	p.random = fn
}

// SetSleep replaces the sleep function (for testing).
func (p *Pacer) SetSleep(fn func(ctx context.Context, d time.Duration) error) {
	p.sleep = fn
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("pause interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
