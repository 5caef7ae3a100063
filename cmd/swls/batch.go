package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-swls/internal/config"
	"github.com/cwbudde/algo-swls/internal/driver"
	"github.com/cwbudde/algo-swls/internal/metrics"
)

func newBatchCmd(a *app) *cobra.Command {
	f := &runFlags{}
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Analyse and merge window files already present in a directory",
		Long: `Runs the periodogram and merge stages over the window files found in <dir>,
for example windows written by "swls segment" or left by an interrupted run.
Windows are grouped by the input named in their file name and each group is
merged into <dir>/!<input>_merged_file.dat.

Failures of single windows are logged and skipped. With --strict the command
exits with status 1 when any failure was recorded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.batch(cmd, f, args[0])
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "YAML configuration file")
	fl.Float64Var(&f.freqStart, "freq-start", def.Grid.Start, "first angular frequency of the grid")
	fl.Float64Var(&f.freqEnd, "freq-end", def.Grid.End, "last angular frequency of the grid")
	fl.IntVar(&f.freqNum, "freq-num", def.Grid.Count, "number of grid frequencies")
	fl.StringVar(&f.method, "method", def.Method, "periodogram method: direct or fast")
	fl.IntVar(&f.oversampling, "oversampling", def.Fast.Oversampling, "FFT grid oversampling of the fast method")
	fl.IntVar(&f.order, "extirpolation-order", def.Fast.ExtirpolationOrder, "grid points each sample is spread over by the fast method")
	fl.BoolVar(&f.precenter, "precenter", false, "subtract the mean amplitude before analysis")
	fl.BoolVar(&f.display, "display", false, "show each figure in the system image viewer")
	fl.BoolVar(&f.noPlot, "no-plot", false, "do not render figures")
	fl.StringVar(&f.scope, "scope", def.Scope, "merge scope: manifest or directory")
	fl.BoolVar(&f.cleanWindows, "clean-windows", false, "remove window files after a clean merge")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	fl.BoolVar(&f.strict, "strict", false, "exit with status 1 if any failure was recorded")
	return cmd
}

func (a *app) batch(cmd *cobra.Command, f *runFlags, dir string) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	f.apply(cmd, &cfg)
	if err := a.setupLogger(cfg.Log); err != nil {
		return err
	}

	m := metrics.New()
	start := time.Now()
	rep, err := driver.RunDir(cmd.Context(), cfg, dir, driver.Deps{Log: a.log, Metrics: m})
	if cfg.MetricsFile != "" {
		if werr := m.WriteTextfile(cfg.MetricsFile); werr != nil {
			a.log.Error("cannot write metrics", zap.String("path", cfg.MetricsFile), zap.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	a.log.Info("batch complete",
		zap.String("dir", dir),
		zap.Int("inputs", len(rep.Inputs)),
		zap.Int("failures", len(rep.Failures)),
		zap.Duration("elapsed", time.Since(start)))
	if f.strict && !rep.OK() {
		return fmt.Errorf("%w: %d", errFailures, len(rep.Failures))
	}
	return nil
}
