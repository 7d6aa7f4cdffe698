package pacing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Min != time.Second {
		t.Errorf("Min = %s, want 1s", cfg.Min)
	}
	if cfg.Max != 2*time.Second {
		t.Errorf("Max = %s, want 2s", cfg.Max)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{name: "default", config: DefaultConfig()},
		{name: "fixed", config: Config{Min: time.Second, Max: time.Second}},
		{name: "zero", config: Config{}},
		{name: "negative min", config: Config{Min: -time.Second, Max: time.Second}, expectError: true},
		{name: "max below min", config: Config{Min: 2 * time.Second, Max: time.Second}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config, zerolog.Nop())
			if tt.expectError && err == nil {
				t.Error("Expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestNext_Range(t *testing.T) {
	p, err := New(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i := 0; i < 1000; i++ {
		d := p.Next()
		if d < time.Second || d >= 2*time.Second {
			t.Fatalf("Next() = %s, outside [1s, 2s)", d)
		}
	}
}

func TestNext_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		random float64
		want   time.Duration
	}{
		{name: "lower bound", random: 0, want: time.Second},
		{name: "midpoint", random: 0.5, want: 1500 * time.Millisecond},
		{name: "quarter", random: 0.25, want: 1250 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := New(DefaultConfig(), zerolog.Nop())
			p.SetRandom(func() float64 { return tt.random })

			if got := p.Next(); got != tt.want {
				t.Errorf("Next() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPause(t *testing.T) {
	p, _ := New(DefaultConfig(), zerolog.Nop())
	p.SetRandom(func() float64 { return 0.5 })

	var slept time.Duration
	p.SetSleep(func(ctx context.Context, d time.Duration) error {
		slept = d
		return nil
	})

	d, err := p.Pause(context.Background())
	if err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if d != 1500*time.Millisecond || slept != d {
		t.Errorf("Pause() = %s, slept %s, want 1.5s", d, slept)
	}
}

func TestPause_RealSleep(t *testing.T) {
	p, _ := New(Config{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond}, zerolog.Nop())

	start := time.Now()
	d, err := p.Pause(context.Background())
	if err != nil {
		t.Fatalf("Pause failed: %v", err)
	}

	if elapsed := time.Since(start); elapsed < d {
		t.Errorf("Pause returned after %s, expected at least %s", elapsed, d)
	}
}

func TestPause_ContextCancelled(t *testing.T) {
	p, _ := New(Config{Min: time.Minute, Max: 2 * time.Minute}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := p.Pause(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Pause should return promptly when context is cancelled")
	}
}
