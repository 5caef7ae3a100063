package pgram

import (
	"math"
	"testing"
)

const tolerance = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil, nil)
	if s.Count != 0 {
		t.Fatalf("expected Count=0, got %d", s.Count)
	}
	if s.PeakIndex != -1 {
		t.Fatalf("expected PeakIndex=-1, got %d", s.PeakIndex)
	}
}

func TestCalculateSinglePeak(t *testing.T) {
	freqs := []float64{1, 2, 3, 4, 5}
	power := []float64{0, 0, 6, 0, 0}

	s := Calculate(freqs, power)
	if s.PeakIndex != 2 {
		t.Fatalf("expected PeakIndex=2, got %d", s.PeakIndex)
	}
	if s.PeakFreq != 3 {
		t.Fatalf("expected PeakFreq=3, got %f", s.PeakFreq)
	}
	if !almostEqual(s.PeakPeriod, 2*math.Pi/3, tolerance) {
		t.Fatalf("expected PeakPeriod=2pi/3, got %f", s.PeakPeriod)
	}
	if s.TotalPower != 6 {
		t.Fatalf("expected TotalPower=6, got %f", s.TotalPower)
	}
	if !almostEqual(s.Centroid, 3, tolerance) {
		t.Fatalf("expected Centroid=3, got %f", s.Centroid)
	}
	if s.Spread != 0 {
		t.Fatalf("expected Spread=0, got %f", s.Spread)
	}
	if s.Flatness != 0 {
		t.Fatalf("expected Flatness=0 with zero bins, got %f", s.Flatness)
	}
	if !almostEqual(s.Prominence, 5, tolerance) {
		t.Fatalf("expected Prominence=5, got %f", s.Prominence)
	}
}

func TestCalculateFlat(t *testing.T) {
	freqs := []float64{1, 2, 3}
	power := []float64{2, 2, 2}

	s := Calculate(freqs, power)
	if !almostEqual(s.Flatness, 1, tolerance) {
		t.Fatalf("expected Flatness=1, got %f", s.Flatness)
	}
	if !almostEqual(s.Centroid, 2, tolerance) {
		t.Fatalf("expected Centroid=2, got %f", s.Centroid)
	}
	if !almostEqual(s.Spread, math.Sqrt(2.0/3.0), tolerance) {
		t.Fatalf("expected Spread=sqrt(2/3), got %f", s.Spread)
	}
	if s.PeakIndex != 0 {
		t.Fatalf("ties should keep the first peak, got %d", s.PeakIndex)
	}
}

func TestCentroidMatchesCalculate(t *testing.T) {
	freqs := []float64{0.5, 1, 1.5, 2}
	power := []float64{1, 3, 2, 0.5}
	if got, want := Centroid(freqs, power), Calculate(freqs, power).Centroid; !almostEqual(got, want, tolerance) {
		t.Fatalf("Centroid = %f, Calculate().Centroid = %f", got, want)
	}
}

func TestRow(t *testing.T) {
	s := Calculate([]float64{1, 2}, []float64{1, 3})
	s.Reference = 12.5
	row := s.Row()
	if len(row) != 6 || row[0] != 12.5 || row[1] != 2 || row[3] != 3 || row[4] != 4 {
		t.Fatalf("Row() = %v", row)
	}
}
