package lombscargle

import (
	"math"

	"github.com/cwbudde/algo-swls/series"
)

// Record is one periodogram grid point.
//
// Reference is the timestamp of the first sample of the analysed series and
// is identical for every record of one periodogram.
type Record struct {
	Frequency float64
	Period    float64
	Power     float64
	Reference float64
}

// Row returns the record as (frequency, period, power, reference).
func (r Record) Row() []float64 {
	return []float64{r.Frequency, r.Period, r.Power, r.Reference}
}

// Periodogram is the result of analysing one series on one grid.
type Periodogram struct {
	Frequencies []float64
	Power       []float64
	Records     []Record
}

// Analyze computes the periodogram of s on grid g and derives one record per
// grid frequency.
func Analyze(s series.Series, g Grid, opts ...Option) (Periodogram, error) {
	if len(s) == 0 {
		return Periodogram{}, ErrEmptySeries
	}
	if err := g.Validate(); err != nil {
		return Periodogram{}, err
	}

	freqs := g.Frequencies()
	pgram, err := Compute(s.Times(), s.Amplitudes(), freqs, opts...)
	if err != nil {
		return Periodogram{}, err
	}

	ref, _ := s.Reference()
	records := make([]Record, len(freqs))
	for i, f := range freqs {
		records[i] = Record{
			Frequency: f,
			Period:    2 * math.Pi / f,
			Power:     pgram[i],
			Reference: ref,
		}
	}

	return Periodogram{
		Frequencies: freqs,
		Power:       pgram,
		Records:     records,
	}, nil
}

// Rows returns the records as tabular rows.
func (p Periodogram) Rows() [][]float64 {
	out := make([][]float64, len(p.Records))
	for i, r := range p.Records {
		out[i] = r.Row()
	}
	return out
}
