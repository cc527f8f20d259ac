// Package main is the entry point for the gridkey overlay.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/gridkey/internal/app"
	"github.com/dshills/gridkey/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		gridPath   string
		logLevel   string
		logFile    string
	)

	cmd := &cobra.Command{
		Use:   "gridkey",
		Short: "Keyboard-driven launcher grid for the terminal",
		Long: `Gridkey overlays the terminal with a grid of key-bound actions.
Press the toggle chord to bring the grid up, a cell's chord to run
its action, and escape to dismiss it.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlay(configPath, gridPath, logLevel, logFile)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	cmd.Flags().StringVarP(&gridPath, "grid", "g", "", "path to grid definition file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&logFile, "log-file", defaultLogFile(), "log file path (empty logs to stderr)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gridkey %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
		},
	})

	return cmd
}

func runOverlay(configPath, gridPath, logLevel, logFile string) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(logLevel)
	logCfg.File = logFile

	log, closer, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	application, err := app.New(app.Options{
		ConfigPath: configPath,
		GridPath:   gridPath,
		Logger:     log,
	})
	if err != nil {
		return err
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		log.Error().Err(err).Msg("overlay exited")
		return err
	}

	stats := application.CacheStats()
	log.Info().
		Int("icons", stats.Size).
		Uint64("hits", stats.Hits).
		Uint64("misses", stats.Misses).
		Msg("gridkey exiting")
	return nil
}

// defaultLogFile keeps logs off stderr, which the overlay owns while
// it is on screen.
func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gridkey", "gridkey.log")
}
