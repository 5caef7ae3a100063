package testutil

import (
	"math"
	"math/rand"
	"sort"

	"github.com/cwbudde/algo-swls/series"
)

// UnevenTimes returns n ascending timestamps in [0, span) drawn with a fixed
// seed, mimicking a sensor log with jittered sampling.
func UnevenTimes(seed int64, n int, span float64) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.Float64() * span
	}
	sort.Float64s(out)
	return out
}

// EvenTimes returns n timestamps start, start+step, ...
func EvenTimes(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// Sine samples amplitude*sin(omega*t + phase) at the given times.
func Sine(times []float64, omega, amplitude, phase float64) series.Series {
	out := make(series.Series, len(times))
	for i, t := range times {
		out[i] = series.Sample{Amplitude: amplitude * math.Sin(omega*t+phase), Time: t}
	}
	return out
}

// AddNoise adds deterministic uniform noise in [-amplitude, amplitude].
func AddNoise(s series.Series, seed int64, amplitude float64) series.Series {
	rng := rand.New(rand.NewSource(seed))
	out := make(series.Series, len(s))
	for i, v := range s {
		v.Amplitude += (rng.Float64()*2 - 1) * amplitude
		out[i] = v
	}
	return out
}

// ArgMax returns the index of the largest value, or -1 for an empty slice.
func ArgMax(x []float64) int {
	idx := -1
	best := math.Inf(-1)
	for i, v := range x {
		if v > best {
			best = v
			idx = i
		}
	}
	return idx
}
