// Package series defines the amplitude/time samples shared by the readers,
// the periodogram engine and the plotter.
package series

// Sample is one observation of an unevenly sampled signal.
type Sample struct {
	Amplitude float64
	Time      float64
}

// Series is an ordered sequence of samples, in file order.
type Series []Sample

// Times returns the sample timestamps.
func (s Series) Times() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Time
	}
	return out
}

// Amplitudes returns the sample values.
func (s Series) Amplitudes() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Amplitude
	}
	return out
}

// Reference returns the timestamp of the first sample. It reports false for
// an empty series.
func (s Series) Reference() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[0].Time, true
}

// Rows returns the series as (amplitude, time) rows for tabular output.
func (s Series) Rows() [][]float64 {
	out := make([][]float64, len(s))
	for i, v := range s {
		out[i] = []float64{v.Amplitude, v.Time}
	}
	return out
}
