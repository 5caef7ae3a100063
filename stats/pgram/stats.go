// Package pgram summarises a periodogram into scalar descriptors so that
// spectral content can be tracked from one window to the next.
package pgram

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Stats holds descriptors of one periodogram. Frequencies are angular.
type Stats struct {
	Count      int
	PeakIndex  int
	PeakFreq   float64
	PeakPeriod float64
	PeakPower  float64
	TotalPower float64
	MeanPower  float64

	// Centroid is the power-weighted mean frequency and Spread the
	// power-weighted standard deviation around it.
	Centroid float64
	Spread   float64

	// Flatness is the geometric over the arithmetic mean of power, 0..1.
	Flatness float64

	// Prominence is PeakPower / MeanPower.
	Prominence float64

	// Reference is the reference timestamp of the analysed window.
	Reference float64
}

// Calculate computes all descriptors. freqs and power must have equal
// length; the shorter length is used otherwise.
func Calculate(freqs, power []float64) Stats {
	n := min(len(freqs), len(power))
	if n == 0 {
		return Stats{PeakIndex: -1}
	}
	freqs, power = freqs[:n], power[:n]

	s := Stats{Count: n}
	s.PeakIndex = 0
	s.PeakPower = power[0]
	for i, p := range power {
		s.TotalPower += p
		if p > s.PeakPower {
			s.PeakPower = p
			s.PeakIndex = i
		}
	}
	s.PeakFreq = freqs[s.PeakIndex]
	if s.PeakFreq != 0 {
		s.PeakPeriod = 2 * math.Pi / s.PeakFreq
	}
	s.MeanPower = s.TotalPower / float64(n)
	if s.MeanPower > 0 {
		s.Prominence = s.PeakPower / s.MeanPower
	}

	s.Centroid = centroid(freqs, power, s.TotalPower)
	s.Spread = spread(freqs, power, s.Centroid, s.TotalPower)
	s.Flatness = flatness(power)
	return s
}

// Centroid returns the power-weighted mean frequency.
//
//	centroid = sum(f_i * P_i) / sum(P_i)
func Centroid(freqs, power []float64) float64 {
	n := min(len(freqs), len(power))
	total := 0.0
	for _, p := range power[:n] {
		total += p
	}
	return centroid(freqs[:n], power[:n], total)
}

func centroid(freqs, power []float64, total float64) float64 {
	if len(power) == 0 || total == 0 {
		return 0
	}
	weighted := make([]float64, len(power))
	vecmath.MulBlock(weighted, freqs, power)
	sum := 0.0
	for _, v := range weighted {
		sum += v
	}
	return sum / total
}

func spread(freqs, power []float64, cent, total float64) float64 {
	if len(power) == 0 || total == 0 {
		return 0
	}
	sq := 0.0
	for i, p := range power {
		d := freqs[i] - cent
		sq += d * d * p
	}
	return math.Sqrt(sq / total)
}

// Flatness returns the spectral flatness (Wiener entropy) of the power
// values. Any zero or negative value yields 0.
func Flatness(power []float64) float64 {
	return flatness(power)
}

func flatness(power []float64) float64 {
	if len(power) == 0 {
		return 0
	}
	sumLin, sumLog := 0.0, 0.0
	for _, p := range power {
		if p <= 0 {
			return 0
		}
		sumLin += p
		sumLog += math.Log(p)
	}
	n := float64(len(power))
	return math.Exp(sumLog/n) / (sumLin / n)
}

// Row returns the summary as (reference, peak frequency, peak period,
// peak power, total power, centroid).
func (s Stats) Row() []float64 {
	return []float64{s.Reference, s.PeakFreq, s.PeakPeriod, s.PeakPower, s.TotalPower, s.Centroid}
}
