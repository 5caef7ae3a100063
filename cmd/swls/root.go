package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-swls/internal/config"
	"github.com/cwbudde/algo-swls/internal/logging"
)

type app struct {
	verbose   bool
	logFormat string

	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "swls",
		Short: "Sliding-window Lomb-Scargle periodograms for unevenly sampled signals",
		Long: `swls splits every input file into overlapping windows of lines, computes a
Lomb-Scargle periodogram for each window and merges the per-window results
into one file per input.

Settings come from defaults, an optional YAML file (--config), a .env file,
SWLS_* environment variables and command-line flags, in increasing order of
precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load .env: %w", err)
			}
			return a.setupLogger(config.Log{
				Level:  config.GetEnv("SWLS_LOG_LEVEL", "info"),
				Format: config.GetEnv("SWLS_LOG_FORMAT", "console"),
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: console or json")

	root.AddCommand(
		newRunCmd(a),
		newBatchCmd(a),
		newSegmentCmd(a),
		newPgramCmd(a),
		newPeaksCmd(a),
	)
	return root
}

// setupLogger replaces the logger. Command-line flags win over l.
func (a *app) setupLogger(l config.Log) error {
	if a.verbose {
		l.Level = "debug"
	}
	if a.logFormat != "" {
		l.Format = a.logFormat
	}
	log, err := logging.New(l.Level, l.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = log
	return nil
}
