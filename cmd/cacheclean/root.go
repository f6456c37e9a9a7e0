package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lucasew/cacheclean/internal/errutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "cacheclean <directory> <high-watermark> <low-watermark> <interval-seconds>",
	Short: "Keeps a cache directory under a size budget",
	Long: `cacheclean is a background janitor for disk caches. It periodically
scans a directory subtree and, whenever total usage exceeds the high
watermark, deletes the least-recently-accessed files until usage drops
to the low watermark.

Eviction order follows the filesystem's last-access times. Mounts with
relatime or noatime make those coarse or frozen; cacheclean trusts
whatever the kernel reports.`,
	Args: cobra.ExactArgs(4),
	Run:  runClean,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if _, printErr := fmt.Fprintln(os.Stderr, err); printErr != nil {
			errutil.ReportError(printErr, "Failed to print error to stderr")
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringSlice("exclude", nil, "Glob patterns for files to never count or delete (relative to the directory)")
	rootCmd.Flags().Int64("min-free", 0, "Also evict when filesystem free space drops below this many bytes (0 disables)")
	rootCmd.Flags().Bool("dry-run", false, "Report evictions without deleting anything")
	rootCmd.Flags().Bool("once", false, "Run a single cycle and exit")
	rootCmd.Flags().Bool("keep-empty-dirs", false, "Do not prune directories emptied by eviction")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	bindFlags(rootCmd.Flags())
	bindFlags(rootCmd.PersistentFlags())
}

func bindFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		errutil.LogMsg(viper.BindPFlag(f.Name, f), "Failed to bind flag", "flag", f.Name)
	})
}

func initConfig() {
	viper.SetEnvPrefix("CACHECLEAN")
	viper.AutomaticEnv()
	setupLogging()
}

func setupLogging() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if viper.GetString("log-format") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
