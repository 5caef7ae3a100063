package sample

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-swls/internal/testutil"
	"github.com/cwbudde/algo-swls/series"
)

func TestCalculateEmpty(t *testing.T) {
	if got := Calculate(nil); got != (Stats{}) {
		t.Fatalf("Calculate(nil) = %+v, want zero", got)
	}
}

func TestCalculateSingleSample(t *testing.T) {
	s := Calculate(series.Series{{Amplitude: -3, Time: 5}})
	if s.Count != 1 || s.Peak != 3 || s.Duration != 0 || s.Nyquist != 0 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestCalculateEvenSampling(t *testing.T) {
	times := testutil.EvenTimes(2, 0.5, 101)
	s := Calculate(testutil.Sine(times, 1, 2, 0))

	testutil.RequireNearlyEqual(t, "start", s.Start, 2, 0)
	testutil.RequireNearlyEqual(t, "duration", s.Duration, 50, 1e-9)
	testutil.RequireNearlyEqual(t, "mean interval", s.MeanInterval, 0.5, 1e-12)
	testutil.RequireNearlyEqual(t, "irregularity", s.Irregularity, 0, 1e-9)
	testutil.RequireNearlyEqual(t, "nyquist", s.Nyquist, 2*math.Pi, 1e-9)
	if s.Peak > 2 || s.Peak < 1.9 {
		t.Fatalf("peak = %v, want close to 2", s.Peak)
	}
}

func TestCalculateUnevenSampling(t *testing.T) {
	times := testutil.UnevenTimes(4, 200, 100)
	s := Calculate(testutil.Sine(times, 1, 1, 0))
	if s.Irregularity <= 0 {
		t.Fatalf("irregularity = %v, want > 0", s.Irregularity)
	}
	if s.MinInterval > s.MeanInterval || s.MeanInterval > s.MaxInterval {
		t.Fatalf("intervals min %v mean %v max %v", s.MinInterval, s.MeanInterval, s.MaxInterval)
	}
}

func TestMoments(t *testing.T) {
	mean, variance, skew, kurt := Moments([]float64{1, 2, 3, 4})
	testutil.RequireNearlyEqual(t, "mean", mean, 2.5, 1e-12)
	testutil.RequireNearlyEqual(t, "variance", variance, 1.25, 1e-12)
	testutil.RequireNearlyEqual(t, "skewness", skew, 0, 1e-12)
	testutil.RequireNearlyEqual(t, "kurtosis", kurt, -1.36, 1e-9)
}

func TestRMSAndZeroCrossings(t *testing.T) {
	values := []float64{3, -4, 0, 5}
	testutil.RequireNearlyEqual(t, "rms", RMS(values), math.Sqrt(50.0/4), 1e-12)
	if got := ZeroCrossings(values); got != 1 {
		t.Fatalf("ZeroCrossings = %d, want 1", got)
	}
	if RMS(nil) != 0 || ZeroCrossings(nil) != 0 {
		t.Fatal("empty input must yield zero")
	}
}

func TestIntervals(t *testing.T) {
	got := Intervals([]float64{1, 1.5, 3})
	if len(got) != 2 || got[0] != 0.5 || got[1] != 1.5 {
		t.Fatalf("Intervals = %v", got)
	}
	if Intervals([]float64{1}) != nil {
		t.Fatal("single timestamp must yield no intervals")
	}
}
