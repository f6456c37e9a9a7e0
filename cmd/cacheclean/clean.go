package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucasew/cacheclean/internal/config"
	"github.com/lucasew/cacheclean/internal/errutil"
	"github.com/lucasew/cacheclean/internal/sweep"
	"github.com/lucasew/cacheclean/internal/sweep/policy"
	"github.com/lucasew/cacheclean/internal/sweep/policy/minfree"
	"github.com/lucasew/cacheclean/internal/sweep/policy/watermark"
)

func runClean(cmd *cobra.Command, args []string) {
	cfg, err := config.Parse(args)
	if err != nil {
		errutil.ReportError(err, "Invalid configuration")
		os.Exit(1)
	}

	cfg.Exclude = viper.GetStringSlice("exclude")
	cfg.MinFree = viper.GetInt64("min-free")
	cfg.DryRun = viper.GetBool("dry-run")
	cfg.Once = viper.GetBool("once")
	cfg.KeepEmptyDirs = viper.GetBool("keep-empty-dirs")

	if err := cfg.Validate(); err != nil {
		errutil.ReportError(err, "Invalid configuration")
		os.Exit(1)
	}

	filter, err := sweep.NewGlobFilter(cfg.Exclude)
	if err != nil {
		errutil.ReportError(err, "Invalid configuration")
		os.Exit(1)
	}

	scanner := sweep.NewScanner(filter)
	evictor := &sweep.Evictor{
		DryRun:        cfg.DryRun,
		KeepEmptyDirs: cfg.KeepEmptyDirs,
	}

	policies := []policy.Policy{
		&watermark.Policy{High: cfg.HighWatermark, Low: cfg.LowWatermark},
	}
	if cfg.MinFree > 0 {
		slog.Info("Enabling minimum free space policy", "min_free", humanize.Bytes(uint64(cfg.MinFree)))
		policies = append(policies, &minfree.Policy{
			Path:         cfg.Directory,
			MinFreeBytes: cfg.MinFree,
		})
	}

	janitor := sweep.NewJanitor(cfg.Directory, scanner, evictor, policies, cfg.Interval)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting janitor",
		"dir", cfg.Directory,
		"high_watermark", humanize.Bytes(uint64(cfg.HighWatermark)),
		"low_watermark", humanize.Bytes(uint64(cfg.LowWatermark)),
		"interval", cfg.Interval,
		"dry_run", cfg.DryRun)

	if cfg.Once {
		if _, err := janitor.Sweep(ctx); err != nil {
			os.Exit(1)
		}
		return
	}

	// SIGUSR1 forces a sweep between ticks. An already running cycle
	// absorbs the request.
	usr1 := make(chan os.Signal, 1)
	signal.Notify(usr1, syscall.SIGUSR1)
	defer signal.Stop(usr1)
	go func() {
		for range usr1 {
			slog.Info("Received SIGUSR1, sweeping now")
			if _, err := janitor.Sweep(ctx); err != nil {
				errutil.LogMsg(err, "Triggered sweep failed")
			}
		}
	}()

	janitor.Run(ctx)
}
