package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/FluidXR/sinodroid/internal/app"
	"github.com/FluidXR/sinodroid/internal/config"
	"github.com/FluidXR/sinodroid/internal/history"
	"github.com/FluidXR/sinodroid/internal/logging"
)

// invocationRetention is how long the adb audit trail is kept.
const invocationRetention = 30 * 24 * time.Hour

var (
	cfgFile  string
	logLevel string
	logFile  string
)

// Process-wide state set up in PersistentPreRunE.
var (
	cfg       *config.Config
	log       zerolog.Logger
	logCloser io.Closer
	hist      *history.DB
	sinodroid *app.App
)

var rootCmd = &cobra.Command{
	Use:     "sinodroid",
	Short:   "Bundled Android platform-tools with a device toolbox",
	Version: app.Version,
	Long: `Sinodroid ships its own copy of adb and fastboot, installs them into a
per-user data directory on first run, and drives connected Android devices
from the command line, a desktop window, or an MCP client.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigPath()
}

// setup loads config and logging for every command. The app itself is
// built lazily by openApp so config commands work without a data dir.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadFrom(configPath())
	if err != nil {
		return err
	}
	opts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}
	if logLevel != "" {
		opts.Level = logLevel
	}
	if logFile != "" {
		opts.File = logFile
	}
	log, logCloser, err = logging.New(opts)
	if err != nil {
		return err
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if hist != nil {
		hist.Close()
		hist = nil
	}
	if logCloser != nil {
		logCloser.Close()
	}
	return nil
}

// openApp opens the history store and builds the app. A history store
// that cannot be opened is logged and skipped.
func openApp(ctx context.Context) (*app.App, error) {
	if sinodroid != nil {
		return sinodroid, nil
	}
	h, err := history.Open(cfg.ExpandDataDir())
	if err != nil {
		log.Warn().Err(err).Msg("history disabled")
	} else {
		hist = h
		if n, err := hist.PruneInvocations(ctx, time.Now().Add(-invocationRetention)); err != nil {
			log.Debug().Err(err).Msg("prune invocations")
		} else if n > 0 {
			log.Debug().Int64("rows", n).Msg("pruned old invocations")
		}
	}
	a, err := app.New(ctx, cfg, log, hist)
	if err != nil {
		return nil, err
	}
	sinodroid = a
	return a, nil
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
