// Package config holds runtime configuration for the cacheclean
// janitor and the parsing of its positional arguments.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

var (
	// ErrWatermarkOrder is returned when the low watermark exceeds the
	// high watermark.
	ErrWatermarkOrder = errors.New("low watermark exceeds high watermark")

	// ErrBadInterval is returned when the check interval is not a
	// positive number of seconds.
	ErrBadInterval = errors.New("interval must be a positive number of seconds")
)

// Config captures everything the janitor needs for its lifetime.
type Config struct {
	// Directory is the root of the tree to monitor and clean.
	Directory string

	// HighWatermark is the usage in bytes above which a cleanup pass
	// is triggered.
	HighWatermark int64

	// LowWatermark is the usage in bytes a cleanup pass drives toward.
	LowWatermark int64

	// Interval is the delay between consecutive scans.
	Interval time.Duration

	// Exclude holds glob patterns for files the janitor must never
	// count or delete, relative to Directory.
	Exclude []string

	// MinFree, when positive, additionally triggers eviction whenever
	// the filesystem's available space falls below it.
	MinFree int64

	// DryRun reports evictions without deleting anything.
	DryRun bool

	// Once runs a single cycle instead of the repeating loop.
	Once bool

	// KeepEmptyDirs leaves directories emptied by eviction in place.
	KeepEmptyDirs bool
}

// Parse builds a Config from the four positional arguments
// <directory> <high-watermark> <low-watermark> <interval-seconds>.
// Watermarks accept raw byte counts or humanized sizes like "1.5GB".
func Parse(args []string) (Config, error) {
	if len(args) != 4 {
		return Config{}, fmt.Errorf("expected 4 arguments, got %d", len(args))
	}

	var cfg Config

	abs, err := filepath.Abs(args[0])
	if err != nil {
		return Config{}, fmt.Errorf("resolve directory %q: %w", args[0], err)
	}
	cfg.Directory = filepath.Clean(abs)

	cfg.HighWatermark, err = parseBytes(args[1])
	if err != nil {
		return Config{}, fmt.Errorf("high watermark: %w", err)
	}
	cfg.LowWatermark, err = parseBytes(args[2])
	if err != nil {
		return Config{}, fmt.Errorf("low watermark: %w", err)
	}

	seconds, err := strconv.Atoi(args[3])
	if err != nil || seconds <= 0 {
		return Config{}, fmt.Errorf("%w: %q", ErrBadInterval, args[3])
	}
	cfg.Interval = time.Duration(seconds) * time.Second

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants that must hold before
// the janitor loop starts.
func (c Config) Validate() error {
	info, err := os.Stat(c.Directory)
	if err != nil {
		return fmt.Errorf("directory %q: %w", c.Directory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", c.Directory)
	}
	if c.LowWatermark > c.HighWatermark {
		return fmt.Errorf("%w: %d > %d", ErrWatermarkOrder, c.LowWatermark, c.HighWatermark)
	}
	if c.Interval <= 0 {
		return ErrBadInterval
	}
	if c.MinFree < 0 {
		return fmt.Errorf("min free space must not be negative, got %d", c.MinFree)
	}
	return nil
}

func parseBytes(s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("not a byte size: %q", s)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("byte size out of range: %q", s)
	}
	return int64(n), nil
}
