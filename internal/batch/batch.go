// Package batch runs the periodogram stage over the window files of one
// input and merges the per-window outputs into a single file.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-swls/dsp/lombscargle"
	"github.com/cwbudde/algo-swls/internal/metrics"
	"github.com/cwbudde/algo-swls/internal/plot"
	"github.com/cwbudde/algo-swls/internal/tabular"
	"github.com/cwbudde/algo-swls/stats/pgram"
	"github.com/cwbudde/algo-swls/stats/sample"
)

// Stage names the step of a unit of work that failed.
type Stage string

const (
	StageRead         Stage = "read"
	StageCompute      Stage = "compute"
	StagePlot         Stage = "plot"
	StageWrite        Stage = "write"
	StageRemoveMerged Stage = "remove-merged"
	StageMerge        Stage = "merge"
	StageSummary      Stage = "summary"
	StageClean        Stage = "clean"
)

// Failure describes one failed unit of work. Failures never abort a batch.
type Failure struct {
	Path  string
	Stage Stage
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Stage, f.Path, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Scope selects which windowed outputs are merged.
type Scope int

const (
	// ScopeManifest merges only the outputs produced in this run.
	ScopeManifest Scope = iota
	// ScopeDirectory merges every windowed output found next to the windows,
	// including leftovers of earlier runs and other inputs.
	ScopeDirectory
)

// Plotter emits the diagnostic figure of one window.
type Plotter interface {
	Emit(ctx context.Context, fig plot.Figure, path string) error
}

// Options configures a Processor.
type Options struct {
	Grid     lombscargle.Grid
	Analysis []lombscargle.Option
	Scope    Scope

	// SummaryPath, when set, receives one peak summary row per analysed
	// window.
	SummaryPath string

	// CleanWindows removes the window files after a merge without failures.
	CleanWindows bool
}

// Report is the outcome of one Run. Outputs, Summaries and Samples are
// parallel and hold one entry per successfully analysed window.
type Report struct {
	Outputs     []string
	Summaries   []pgram.Stats
	Samples     []sample.Stats
	Failures    []Failure
	Merged      string
	MergedFiles int
	MergedBytes int64
}

// OK reports whether the run completed without failures.
func (r Report) OK() bool { return len(r.Failures) == 0 }

// Processor analyses window files.
type Processor struct {
	opts    Options
	plotter Plotter
	log     *zap.Logger
	metrics *metrics.Metrics
}

// New returns a Processor. plotter, log and m may be nil.
func New(opts Options, plotter Plotter, log *zap.Logger, m *metrics.Metrics) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{opts: opts, plotter: plotter, log: log, metrics: m}
}

// Run analyses every window, then rebuilds mergedPath from the windowed
// outputs in window order. Per-window problems are collected in the report;
// the returned error is non-nil only when ctx is cancelled.
func (p *Processor) Run(ctx context.Context, windows []string, mergedPath string) (Report, error) {
	windows = append([]string(nil), windows...)
	sortWindows(windows)

	rep := Report{Merged: mergedPath}
	for _, w := range windows {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		res, fail := p.processWindow(ctx, w)
		if fail != nil {
			p.log.Warn("cannot process window",
				zap.String("window", w),
				zap.String("stage", string(fail.Stage)),
				zap.Error(fail.Err))
			p.metrics.IncWindow(metrics.OutcomeFailed)
			rep.Failures = append(rep.Failures, *fail)
			continue
		}
		p.metrics.IncWindow(metrics.OutcomeOK)
		rep.Outputs = append(rep.Outputs, res.output)
		rep.Summaries = append(rep.Summaries, res.spectrum)
		rep.Samples = append(rep.Samples, res.samples)
	}

	if err := ctx.Err(); err != nil {
		return rep, err
	}
	p.merge(&rep, windows)
	p.writeSummary(&rep)
	if p.opts.CleanWindows && rep.OK() {
		p.clean(&rep, windows)
	}
	return rep, nil
}

type windowResult struct {
	output   string
	spectrum pgram.Stats
	samples  sample.Stats
}

func (p *Processor) processWindow(ctx context.Context, window string) (windowResult, *Failure) {
	p.log.Debug("process window", zap.String("window", window))
	fail := func(stage Stage, err error) (windowResult, *Failure) {
		return windowResult{}, &Failure{Path: window, Stage: stage, Err: err}
	}

	samples, err := tabular.ReadSamples(window)
	if err != nil {
		return fail(StageRead, err)
	}
	res := windowResult{samples: sample.Calculate(samples)}
	p.log.Debug("read window",
		zap.String("window", window),
		zap.Int("samples", res.samples.Count),
		zap.Float64("duration", res.samples.Duration),
		zap.Float64("irregularity", res.samples.Irregularity),
		zap.Float64("nyquist", res.samples.Nyquist))

	start := time.Now()
	pg, err := lombscargle.Analyze(samples, p.opts.Grid, p.opts.Analysis...)
	if err != nil {
		return fail(StageCompute, err)
	}
	p.metrics.ObserveCompute(time.Since(start))

	if p.plotter != nil {
		png := PlotPath(window)
		fig := plot.Figure{
			Title:       filepath.Base(window),
			Samples:     samples,
			Frequencies: pg.Frequencies,
			Power:       pg.Power,
		}
		if err := p.plotter.Emit(ctx, fig, png); err != nil {
			return fail(StagePlot, err)
		}
		p.log.Debug("saved plot", zap.String("path", png))
	}

	res.output = WindowedPath(window)
	if err := tabular.WriteRows(res.output, pg.Rows()); err != nil {
		return fail(StageWrite, err)
	}
	p.metrics.AddRecords(len(pg.Records))

	res.spectrum = pgram.Calculate(pg.Frequencies, pg.Power)
	res.spectrum.Reference = pg.Records[0].Reference
	p.log.Info("saved periodogram",
		zap.String("path", res.output),
		zap.Int("samples", len(samples)),
		zap.Float64("peak_frequency", res.spectrum.PeakFreq),
		zap.Float64("peak_power", res.spectrum.PeakPower))
	return res, nil
}

func (p *Processor) merge(rep *Report, windows []string) {
	if err := os.Remove(rep.Merged); err != nil && !errors.Is(err, fs.ErrNotExist) {
		rep.Failures = append(rep.Failures, Failure{Path: rep.Merged, Stage: StageRemoveMerged, Err: err})
	}

	sources := rep.Outputs
	if p.opts.Scope == ScopeDirectory {
		dirs := map[string]bool{}
		sources = nil
		for _, w := range windows {
			dir := filepath.Dir(w)
			if dirs[dir] {
				continue
			}
			dirs[dir] = true
			found, err := DiscoverWindowed(dir)
			if err != nil {
				rep.Failures = append(rep.Failures, Failure{Path: dir, Stage: StageMerge, Err: err})
				continue
			}
			sources = append(sources, found...)
		}
	}

	for _, src := range sources {
		n, err := tabular.AppendFile(rep.Merged, src)
		rep.MergedBytes += n
		p.metrics.AddMergedBytes(n)
		if err != nil {
			rep.Failures = append(rep.Failures, Failure{Path: src, Stage: StageMerge, Err: err})
			continue
		}
		rep.MergedFiles++
	}
	p.log.Info("merged windowed outputs",
		zap.String("path", rep.Merged),
		zap.Int("files", rep.MergedFiles),
		zap.Int64("bytes", rep.MergedBytes))
}

func (p *Processor) writeSummary(rep *Report) {
	if p.opts.SummaryPath == "" {
		return
	}
	rows := make([][]float64, len(rep.Summaries))
	for i, s := range rep.Summaries {
		rows[i] = s.Row()
	}
	if err := tabular.WriteRows(p.opts.SummaryPath, rows); err != nil {
		rep.Failures = append(rep.Failures, Failure{Path: p.opts.SummaryPath, Stage: StageSummary, Err: err})
	}
}

func (p *Processor) clean(rep *Report, windows []string) {
	for _, w := range windows {
		if err := os.Remove(w); err != nil && !errors.Is(err, fs.ErrNotExist) {
			rep.Failures = append(rep.Failures, Failure{Path: w, Stage: StageClean, Err: err})
		}
	}
}
