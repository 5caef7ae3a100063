// Package driver runs the full pipeline over every input file: segment into
// windows, analyse each window and merge the results.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-swls/dsp/lombscargle"
	"github.com/cwbudde/algo-swls/internal/batch"
	"github.com/cwbudde/algo-swls/internal/config"
	"github.com/cwbudde/algo-swls/internal/metrics"
	"github.com/cwbudde/algo-swls/internal/plot"
	"github.com/cwbudde/algo-swls/internal/segment"
	"github.com/cwbudde/algo-swls/internal/tabular"
)

// StageSegment marks failures while splitting an input into windows.
const StageSegment batch.Stage = "segment"

// Deps are the collaborators of a run. All fields are optional.
type Deps struct {
	Log     *zap.Logger
	Metrics *metrics.Metrics

	// Plotter overrides the renderer built from the plot configuration.
	Plotter batch.Plotter
}

// Input is the outcome of one input file.
type Input struct {
	Path     string
	Manifest segment.Manifest
	Batch    batch.Report
}

// Report is the outcome of a run. Failures holds every failure of every
// input in processing order.
type Report struct {
	Inputs   []Input
	Failures []batch.Failure
}

// OK reports whether the run completed without failures.
func (r Report) OK() bool { return len(r.Failures) == 0 }

// Run processes every file matched by cfg.InputGlob in lexical order.
// Failures of single inputs or windows are collected in the report. The
// returned error is non-nil for an invalid configuration, a bad glob, an
// unusable output directory or a cancelled context.
func Run(ctx context.Context, cfg config.Config, deps Deps) (Report, error) {
	p, err := newPipeline(cfg, deps)
	if err != nil {
		return Report{}, err
	}
	log := p.log

	inputs, err := filepath.Glob(cfg.InputGlob)
	if err != nil {
		return Report{}, fmt.Errorf("driver: input glob %q: %w", cfg.InputGlob, err)
	}
	sort.Strings(inputs)
	if len(inputs) == 0 {
		log.Warn("no input files", zap.String("glob", cfg.InputGlob))
		return Report{}, nil
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("driver: output dir: %w", err)
	}

	var rep Report
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		log.Info("processing input", zap.String("input", input))

		in := Input{Path: input}
		lines, err := tabular.ReadLines(input)
		if err != nil {
			rep.fail(log, deps.Metrics, in, batch.Failure{Path: input, Stage: batch.StageRead, Err: err})
			continue
		}

		prefix := filepath.Join(cfg.OutputDir, filepath.Base(input))
		in.Manifest, err = segment.Write(lines, prefix, cfg.Window, cfg.Step)
		deps.Metrics.AddWindowsWritten(len(in.Manifest.Windows))
		if err != nil {
			rep.fail(log, deps.Metrics, in, batch.Failure{Path: input, Stage: StageSegment, Err: err})
			continue
		}
		if len(in.Manifest.Windows) == 0 {
			log.Info("input shorter than one window",
				zap.String("input", input),
				zap.Int("lines", len(lines)),
				zap.Int("window", cfg.Window))
		}

		if err := p.analyse(ctx, &rep, in, cfg.OutputDir); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// RunDir analyses window files already present in dir, for example those
// left by an interrupted run, without segmenting any input. Windows are
// grouped by the input named in their file name and each group is merged
// into dir. Files that do not follow the window naming convention are
// skipped. Window, step and input settings of cfg are not used.
func RunDir(ctx context.Context, cfg config.Config, dir string, deps Deps) (Report, error) {
	p, err := newPipeline(cfg, deps)
	if err != nil {
		return Report{}, err
	}
	windows, err := batch.Discover(dir)
	if err != nil {
		return Report{}, err
	}
	manifests, rest := batch.GroupWindows(windows)
	for _, r := range rest {
		p.log.Warn("skipping file that is not a window", zap.String("path", r))
	}
	if len(manifests) == 0 {
		p.log.Warn("no window files", zap.String("dir", dir))
		return Report{}, nil
	}

	var rep Report
	for _, m := range manifests {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		p.log.Info("processing windows",
			zap.String("input", m.Input),
			zap.Int("windows", len(m.Windows)))
		if err := p.analyse(ctx, &rep, Input{Path: m.Input, Manifest: m}, dir); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// pipeline holds the settings shared by every input of a run.
type pipeline struct {
	log      *zap.Logger
	metrics  *metrics.Metrics
	cfg      config.Config
	analysis []lombscargle.Option
	scope    batch.Scope
	plotter  batch.Plotter
}

func newPipeline(cfg config.Config, deps Deps) (*pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	analysis, err := analysisOptions(cfg)
	if err != nil {
		return nil, err
	}
	p := &pipeline{
		log:      deps.Log,
		metrics:  deps.Metrics,
		cfg:      cfg,
		analysis: analysis,
		scope:    batch.ScopeManifest,
		plotter:  newPlotter(cfg, deps),
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if cfg.Scope == config.ScopeDirectory {
		p.scope = batch.ScopeDirectory
	}
	return p, nil
}

// analyse runs the periodogram stage over the windows of in and merges the
// outputs into outDir. Only a cancelled context is returned as an error.
func (p *pipeline) analyse(ctx context.Context, rep *Report, in Input, outDir string) error {
	proc := batch.New(batch.Options{
		Grid:         p.cfg.Grid,
		Analysis:     p.analysis,
		Scope:        p.scope,
		SummaryPath:  batch.SummaryPath(outDir, in.Path),
		CleanWindows: p.cfg.CleanWindows,
	}, p.plotter, p.log.With(zap.String("input", filepath.Base(in.Path))), p.metrics)

	var err error
	in.Batch, err = proc.Run(ctx, in.Manifest.Paths(), batch.MergedPath(outDir, in.Path))
	rep.Inputs = append(rep.Inputs, in)
	rep.Failures = append(rep.Failures, in.Batch.Failures...)
	if err != nil {
		return err
	}

	outcome := metrics.OutcomeOK
	if !in.Batch.OK() {
		outcome = metrics.OutcomeFailed
	}
	p.metrics.IncInput(outcome)
	p.log.Info("finished input",
		zap.String("input", in.Path),
		zap.Int("windows", len(in.Manifest.Windows)),
		zap.Int("failures", len(in.Batch.Failures)),
		zap.String("merged", in.Batch.Merged))
	return nil
}

func (r *Report) fail(log *zap.Logger, m *metrics.Metrics, in Input, f batch.Failure) {
	log.Error("cannot process input",
		zap.String("input", f.Path),
		zap.String("stage", string(f.Stage)),
		zap.Error(f.Err))
	m.IncInput(metrics.OutcomeFailed)
	in.Batch.Failures = append(in.Batch.Failures, f)
	r.Inputs = append(r.Inputs, in)
	r.Failures = append(r.Failures, f)
}

func analysisOptions(cfg config.Config) ([]lombscargle.Option, error) {
	method, err := lombscargle.ParseMethod(cfg.Method)
	if err != nil {
		return nil, err
	}
	opts := []lombscargle.Option{
		lombscargle.WithMethod(method),
		lombscargle.WithOversampling(cfg.Fast.Oversampling),
		lombscargle.WithExtirpolationOrder(cfg.Fast.ExtirpolationOrder),
	}
	if cfg.Precenter {
		opts = append(opts, lombscargle.WithPrecenter())
	}
	return opts, nil
}

func newPlotter(cfg config.Config, deps Deps) batch.Plotter {
	if deps.Plotter != nil {
		return deps.Plotter
	}
	if !cfg.Plot.Save && !cfg.Plot.Display {
		return nil
	}
	return plot.NewRenderer(plot.Options{Save: cfg.Plot.Save, Display: cfg.Plot.Display})
}
