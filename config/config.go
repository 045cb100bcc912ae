// Package config resolves pointer-trail settings from the environment and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Color modes accepted by ColorMode
const (
	ColorAuto      = "auto"
	ColorTrueColor = "truecolor"
	Color256       = "256"
)

// Config holds the host settings; flags override environment values
type Config struct {
	Lifetime       time.Duration `env:"POINTER_TRAIL_LIFETIME"        envDefault:"500ms"`
	SampleInterval time.Duration `env:"POINTER_TRAIL_SAMPLE_INTERVAL" envDefault:"20ms"`
	FrameInterval  time.Duration `env:"POINTER_TRAIL_FRAME_INTERVAL"  envDefault:"16ms"`
	ColorMode      string        `env:"POINTER_TRAIL_COLOR"           envDefault:"auto"`
	Sound          bool          `env:"POINTER_TRAIL_SOUND"`
	Debug          bool          `env:"POINTER_TRAIL_DEBUG"`
	SnapshotDir    string        `env:"POINTER_TRAIL_SNAPSHOT_DIR"    envDefault:"."`
	MetricsAddr    string        `env:"POINTER_TRAIL_METRICS_ADDR"`
}

// ParseConfig parses environment and flags into Config
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.DurationVar(&cfg.Lifetime, "lifetime", cfg.Lifetime, "How long a trail point stays visible")
	fs.DurationVar(&cfg.SampleInterval, "sample-interval", cfg.SampleInterval, "Minimum spacing between accepted pointer samples")
	fs.DurationVar(&cfg.FrameInterval, "frame-interval", cfg.FrameInterval, "Aging tick interval")
	fs.StringVar(&cfg.ColorMode, "color", cfg.ColorMode, "Color mode: auto, truecolor, 256")
	fs.BoolVar(&cfg.Sound, "sound", cfg.Sound, "Play a chime when a new stroke starts")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Write debug logs to the logs directory")
	fs.StringVar(&cfg.SnapshotDir, "snapshot-dir", cfg.SnapshotDir, "Directory for PNG snapshots")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address (debugging)")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the trail cannot run with
func (c Config) Validate() error {
	if c.Lifetime <= 0 {
		return errors.New("lifetime must be > 0")
	}
	if c.SampleInterval <= 0 {
		return errors.New("sample interval must be > 0")
	}
	if c.FrameInterval <= 0 {
		return errors.New("frame interval must be > 0")
	}
	switch c.ColorMode {
	case ColorAuto, ColorTrueColor, Color256:
	default:
		return fmt.Errorf("unknown color mode %q", c.ColorMode)
	}
	if c.SnapshotDir == "" {
		return errors.New("snapshot dir must not be empty")
	}
	return nil
}
