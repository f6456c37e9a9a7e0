package config

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Parse([]string{dir, "300", "150", "60"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.HighWatermark != 300 {
		t.Errorf("expected high watermark 300, got %d", cfg.HighWatermark)
	}
	if cfg.LowWatermark != 150 {
		t.Errorf("expected low watermark 150, got %d", cfg.LowWatermark)
	}
	if cfg.Interval != 60*time.Second {
		t.Errorf("expected interval 60s, got %v", cfg.Interval)
	}
}

func TestParseHumanizedSizes(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Parse([]string{dir, "1GB", "500MB", "10"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.HighWatermark != 1_000_000_000 {
		t.Errorf("expected high watermark 1GB, got %d", cfg.HighWatermark)
	}
	if cfg.LowWatermark != 500_000_000 {
		t.Errorf("expected low watermark 500MB, got %d", cfg.LowWatermark)
	}
}

func TestParseRejections(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		args []string
		want error
	}{
		{"low above high", []string{dir, "100", "200", "10"}, ErrWatermarkOrder},
		{"zero interval", []string{dir, "200", "100", "0"}, ErrBadInterval},
		{"negative interval", []string{dir, "200", "100", "-5"}, ErrBadInterval},
		{"non-numeric interval", []string{dir, "200", "100", "soon"}, ErrBadInterval},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.args)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("non-numeric watermark", func(t *testing.T) {
		if _, err := Parse([]string{dir, "lots", "100", "10"}); err == nil {
			t.Error("expected error for non-numeric watermark")
		}
	})

	t.Run("negative watermark", func(t *testing.T) {
		if _, err := Parse([]string{dir, "200", "-100", "10"}); err == nil {
			t.Error("expected error for negative watermark")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		if _, err := Parse([]string{dir + "/nope", "200", "100", "10"}); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("wrong arity", func(t *testing.T) {
		if _, err := Parse([]string{dir, "200", "100"}); err == nil {
			t.Error("expected error for missing argument")
		}
	})
}

func TestValidateMinFree(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Parse([]string{dir, "200", "100", "10"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg.MinFree = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative min free space")
	}
}
