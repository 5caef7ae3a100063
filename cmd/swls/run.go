package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-swls/internal/config"
	"github.com/cwbudde/algo-swls/internal/driver"
	"github.com/cwbudde/algo-swls/internal/metrics"
)

var errFailures = errors.New("run recorded failures")

type runFlags struct {
	config       string
	input        string
	output       string
	window       int
	step         int
	freqStart    float64
	freqEnd      float64
	freqNum      int
	method       string
	oversampling int
	order        int
	precenter    bool
	display      bool
	noPlot       bool
	scope        string
	cleanWindows bool
	metricsFile  string
	strict       bool
}

func newRunCmd(a *app) *cobra.Command {
	f := &runFlags{}
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Segment, analyse and merge every input file",
		Long: `Runs the full pipeline for every file matched by the input glob:

  1. split the file into windows of --window lines every --step lines
  2. compute a periodogram for each window and save <window>_windowed.dat
     (and a <window>_windowed.png figure unless --no-plot)
  3. rebuild !<input>_merged_file.dat from the windowed outputs

Failures of single files or windows are logged and skipped. With --strict
the command exits with status 1 when any failure was recorded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "YAML configuration file")
	fl.StringVar(&f.input, "input", def.InputGlob, "glob of input files")
	fl.StringVar(&f.output, "output", def.OutputDir, "output directory")
	fl.IntVar(&f.window, "window", def.Window, "window size in lines")
	fl.IntVar(&f.step, "step", def.Step, "lines between window starts")
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

// apply overlays the flags set on the command line onto cfg.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("input") {
		cfg.InputGlob = f.input
	}
	if changed("output") {
		cfg.OutputDir = f.output
	}
	if changed("window") {
		cfg.Window = f.window
	}
	if changed("step") {
		cfg.Step = f.step
	}
	if changed("freq-start") {
		cfg.Grid.Start = f.freqStart
	}
	if changed("freq-end") {
		cfg.Grid.End = f.freqEnd
	}
	if changed("freq-num") {
		cfg.Grid.Count = f.freqNum
	}
	if changed("method") {
		cfg.Method = f.method
	}
	if changed("oversampling") {
		cfg.Fast.Oversampling = f.oversampling
	}
	if changed("extirpolation-order") {
		cfg.Fast.ExtirpolationOrder = f.order
	}
	if changed("precenter") {
		cfg.Precenter = f.precenter
	}
	if changed("display") {
		cfg.Plot.Display = f.display
	}
	if f.noPlot {
		cfg.Plot.Save = false
		cfg.Plot.Display = false
	}
	if changed("scope") {
		cfg.Scope = f.scope
	}
	if changed("clean-windows") {
		cfg.CleanWindows = f.cleanWindows
	}
	if changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
}

func (a *app) run(cmd *cobra.Command, f *runFlags) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	f.apply(cmd, &cfg)
	if err := a.setupLogger(cfg.Log); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.log.Debug("configuration",
		zap.String("input", cfg.InputGlob),
		zap.String("output", cfg.OutputDir),
		zap.Int("window", cfg.Window),
		zap.Int("step", cfg.Step),
		zap.Float64("freq_start", cfg.Grid.Start),
		zap.Float64("freq_end", cfg.Grid.End),
		zap.Int("freq_num", cfg.Grid.Count),
		zap.String("method", cfg.Method),
		zap.String("scope", cfg.Scope))

	m := metrics.New()
	start := time.Now()
	rep, err := driver.Run(cmd.Context(), cfg, driver.Deps{Log: a.log, Metrics: m})
	if cfg.MetricsFile != "" {
		if werr := m.WriteTextfile(cfg.MetricsFile); werr != nil {
			a.log.Error("cannot write metrics", zap.String("path", cfg.MetricsFile), zap.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	a.log.Info("run complete",
		zap.Int("inputs", len(rep.Inputs)),
		zap.Int("failures", len(rep.Failures)),
		zap.Duration("elapsed", time.Since(start)))
	if f.strict && !rep.OK() {
		return fmt.Errorf("%w: %d", errFailures, len(rep.Failures))
	}
	return nil
}
