// Package metrics records batch progress counters on a private Prometheus
// registry and can dump them for the node_exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters of one run. Recording methods are no-ops on a
// nil *Metrics.
type Metrics struct {
	registry       *prometheus.Registry
	inputsTotal    *prometheus.CounterVec
	windowsWritten prometheus.Counter
	windowsTotal   *prometheus.CounterVec
	recordsWritten prometheus.Counter
	mergedBytes    prometheus.Counter
	computeSeconds prometheus.Histogram
}

// Outcome labels.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// New creates and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	inputsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swls_inputs_total",
		Help: "Input files processed, by outcome",
	}, []string{"outcome"})
	windowsWritten := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "swls_windows_written_total",
		Help: "Window files written by the segmenter",
	})
	windowsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swls_windows_processed_total",
		Help: "Window files analysed, by outcome",
	}, []string{"outcome"})
	recordsWritten := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "swls_records_written_total",
		Help: "Periodogram records written to windowed outputs",
	})
	mergedBytes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "swls_merged_bytes_total",
		Help: "Bytes appended to merged output files",
	})
	computeSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "swls_window_compute_seconds",
		Help:    "Periodogram computation time per window",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	registry.MustRegister(
		inputsTotal,
		windowsWritten,
		windowsTotal,
		recordsWritten,
		mergedBytes,
		computeSeconds,
	)

	return &Metrics{
		registry:       registry,
		inputsTotal:    inputsTotal,
		windowsWritten: windowsWritten,
		windowsTotal:   windowsTotal,
		recordsWritten: recordsWritten,
		mergedBytes:    mergedBytes,
		computeSeconds: computeSeconds,
	}
}

// IncInput counts one input file with the given outcome.
func (m *Metrics) IncInput(outcome string) {
	if m == nil {
		return
	}
	m.inputsTotal.WithLabelValues(outcome).Inc()
}

// AddWindowsWritten counts window files produced by the segmenter.
func (m *Metrics) AddWindowsWritten(n int) {
	if m == nil {
		return
	}
	m.windowsWritten.Add(float64(n))
}

// IncWindow counts one analysed window with the given outcome.
func (m *Metrics) IncWindow(outcome string) {
	if m == nil {
		return
	}
	m.windowsTotal.WithLabelValues(outcome).Inc()
}

// AddRecords counts periodogram records written.
func (m *Metrics) AddRecords(n int) {
	if m == nil {
		return
	}
	m.recordsWritten.Add(float64(n))
}

// AddMergedBytes counts bytes appended to merged files.
func (m *Metrics) AddMergedBytes(n int64) {
	if m == nil {
		return
	}
	m.mergedBytes.Add(float64(n))
}

// ObserveCompute records the duration of one periodogram computation.
func (m *Metrics) ObserveCompute(d time.Duration) {
	if m == nil {
		return
	}
	m.computeSeconds.Observe(d.Seconds())
}

// WriteTextfile writes all metrics in the text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
