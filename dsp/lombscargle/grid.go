package lombscargle

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid describes a linearly spaced frequency grid, inclusive of both ends.
type Grid struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Count int     `yaml:"count"`
}

// Validate reports whether the grid can be evaluated.
func (g Grid) Validate() error {
	if g.Count <= 0 {
		return fmt.Errorf("%w: count %d", ErrEmptyGrid, g.Count)
	}
	if !(g.Start > 0) || math.IsInf(g.Start, 0) {
		return fmt.Errorf("%w: start %g", ErrNonPositiveFrequency, g.Start)
	}
	if g.End < g.Start || math.IsInf(g.End, 0) || math.IsNaN(g.End) {
		return fmt.Errorf("lombscargle: grid end must be >= start: %g < %g", g.End, g.Start)
	}
	return nil
}

// Frequencies returns the grid points. A single-point grid yields Start.
func (g Grid) Frequencies() []float64 {
	switch {
	case g.Count <= 0:
		return nil
	case g.Count == 1:
		return []float64{g.Start}
	}
	f := floats.Span(make([]float64, g.Count), g.Start, g.End)
	f[len(f)-1] = g.End
	return f
}

// Step returns the spacing between adjacent grid points.
func (g Grid) Step() float64 {
	if g.Count < 2 {
		return 0
	}
	return (g.End - g.Start) / float64(g.Count-1)
}

// uniformStep returns f0 and df when freqs is evenly spaced.
func uniformStep(freqs []float64) (f0, df float64, ok bool) {
	if len(freqs) == 0 {
		return 0, 0, false
	}
	f0 = freqs[0]
	if len(freqs) == 1 {
		return f0, 0, true
	}
	df = (freqs[len(freqs)-1] - f0) / float64(len(freqs)-1)
	tol := 1e-9 * math.Max(math.Abs(freqs[len(freqs)-1]), math.Abs(f0))
	for i, f := range freqs {
		if math.Abs(f-(f0+float64(i)*df)) > tol {
			return 0, 0, false
		}
	}
	return f0, df, true
}
