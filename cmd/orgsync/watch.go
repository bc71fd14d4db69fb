package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/orgtools/orgsync/internal/engine"
	"github.com/orgtools/orgsync/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [beorg-file] [journelly-file]",
	Short: "Keep the two files in sync as they change",
	Long: `Run an initial sync, then watch both files and re-sync whenever
either changes on disk. Change bursts are debounced, and the writes the
sync itself performs are ignored.

Runs until interrupted. With --log-file, activity goes to a rolling log
file instead of stderr.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := loadSettings(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := resolvePaths(settings, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		placement, err := settings.Placement()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		logger := log.New(os.Stderr, "[watch] ", log.LstdFlags)
		if settings.LogFile != "" {
			logger = log.New(&lumberjack.Logger{
				Filename:   settings.LogFile,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
			}, "[watch] ", log.LstdFlags)
		}

		watchCfg := watch.DefaultConfig()
		watchCfg.Logger = logger
		if settings.Debounce > 0 {
			watchCfg.Debounce = settings.Debounce
		}

		watcher, err := watch.New(engine.Config{
			BeOrgPath:     settings.BeOrgFile,
			JournellyPath: settings.JournellyFile,
			Verbose:       settings.Verbose,
			AllowMissing:  settings.AllowMissing,
			Placement:     placement,
		}, watchCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := watcher.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", 0, "wait this long after a change before re-syncing")
	watchCmd.Flags().String("log-file", "", "rolling log file for watcher activity")
	watchCmd.Flags().Bool("allow-missing", false, "treat a missing input file as empty")
	watchCmd.Flags().String("opaque-placement", "append", "where non-task content goes: append or prepend")
	rootCmd.AddCommand(watchCmd)
}
