// Package sample describes the amplitudes and the time coverage of one
// unevenly sampled series.
package sample

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-swls/series"
)

// Stats holds amplitude and sampling descriptors of a series.
type Stats struct {
	Count int

	// Amplitude descriptors. Peak is max(|Min|, |Max|); Variance is the
	// population variance and Kurtosis the excess kurtosis.
	Mean          float64
	RMS           float64
	Min           float64
	Max           float64
	Peak          float64
	Variance      float64
	Skewness      float64
	Kurtosis      float64
	ZeroCrossings int

	// Time coverage. Intervals are taken between consecutive samples in
	// file order.
	Start        float64
	End          float64
	Duration     float64
	MinInterval  float64
	MaxInterval  float64
	MeanInterval float64

	// Irregularity is the coefficient of variation of the sampling
	// intervals, 0 for an evenly sampled series.
	Irregularity float64

	// Nyquist is the angular frequency pi / MeanInterval, the highest
	// frequency an evenly sampled series with the same density resolves.
	Nyquist float64
}

// Calculate computes all descriptors of s.
func Calculate(s series.Series) Stats {
	n := len(s)
	if n == 0 {
		return Stats{}
	}

	values := s.Amplitudes()
	st := Stats{
		Count: n,
		Min:   values[0],
		Max:   values[0],
		Start: s[0].Time,
		End:   s[n-1].Time,
	}
	st.Duration = st.End - st.Start
	st.Mean, st.Variance, st.Skewness, st.Kurtosis = Moments(values)
	st.RMS = RMS(values)
	st.ZeroCrossings = ZeroCrossings(values)
	for _, v := range values {
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
	}
	st.Peak = math.Max(math.Abs(st.Min), math.Abs(st.Max))

	iv := Intervals(s.Times())
	if len(iv) == 0 {
		return st
	}
	st.MinInterval, st.MaxInterval = iv[0], iv[0]
	for _, d := range iv {
		st.MinInterval = math.Min(st.MinInterval, d)
		st.MaxInterval = math.Max(st.MaxInterval, d)
	}
	st.MeanInterval = stat.Mean(iv, nil)
	if len(iv) > 1 && st.MeanInterval != 0 {
		st.Irregularity = stat.StdDev(iv, nil) / math.Abs(st.MeanInterval)
	}
	if st.MeanInterval > 0 {
		st.Nyquist = math.Pi / st.MeanInterval
	}
	return st
}

// Intervals returns the differences between consecutive timestamps.
func Intervals(times []float64) []float64 {
	if len(times) < 2 {
		return nil
	}
	out := make([]float64, len(times)-1)
	for i := 1; i < len(times); i++ {
		out[i-1] = times[i] - times[i-1]
	}
	return out
}

// RMS returns the root-mean-square of values.
func RMS(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumSq float64
	for _, x := range values {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// ZeroCrossings counts sign changes between consecutive values.
func ZeroCrossings(values []float64) int {
	var count int
	for i := 1; i < len(values); i++ {
		if values[i-1]*values[i] < 0 {
			count++
		}
	}
	return count
}

// Moments returns the mean, population variance, skewness and excess
// kurtosis of values using Welford's online update.
func Moments(values []float64) (mean, variance, skewness, kurtosis float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var m2, m3, m4 float64
	for i, x := range values {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 before M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN
	}

	nf := float64(n)
	variance = m2 / nf
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}
	return mean, variance, skewness, kurtosis
}
