package lombscargle

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/floats"
)

// fastSums evaluates the trig sums on a uniform grid following Press &
// Rybicki (1989): samples are extirpolated onto a regular mesh and the sums
// for all frequencies are read off a single FFT.
func fastSums(times, values, freqs []float64, oversampling, order int) (trigSums, error) {
	w0, dw, ok := uniformStep(freqs)
	if !ok {
		return trigSums{}, ErrNonUniformGrid
	}

	ones := make([]float64, len(times))
	for i := range ones {
		ones[i] = 1
	}

	var (
		sums trigSums
		err  error
	)
	sums.ch, sums.sh, err = trigSum(times, values, w0, dw, len(freqs), oversampling, order)
	if err != nil {
		return trigSums{}, err
	}
	sums.c2, sums.s2, err = trigSum(times, ones, 2*w0, 2*dw, len(freqs), oversampling, order)
	if err != nil {
		return trigSums{}, err
	}
	return sums, nil
}

// trigSum approximates sum_j h_j exp(i w_k t_j) for w_k = w0 + k*dw,
// k = 0..n-1, returning real and imaginary parts.
func trigSum(times, h []float64, w0, dw float64, n, oversampling, order int) (re, im []float64, err error) {
	fftSize := nextPowerOf2(n * oversampling)
	if fftSize < order {
		fftSize = nextPowerOf2(order)
	}

	tmin := floats.Min(times)
	cycles := dw / (2 * math.Pi)

	mesh := make([]complex128, fftSize)
	for j, t := range times {
		dt := t - tmin
		s, c := math.Sincos(w0 * dt)
		hj := complex(h[j]*c, h[j]*s)

		_, frac := math.Modf(dt * cycles)
		if frac < 0 {
			frac++
		}
		extirpolate(mesh, frac*float64(fftSize), hj, order)
	}

	// The forward transform of the conjugate yields the positive-exponent
	// sums after a second conjugation, without inverse normalization.
	for i, v := range mesh {
		mesh[i] = complex(real(v), -imag(v))
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("lombscargle: failed to create FFT plan: %w", err)
	}
	bins := make([]complex128, fftSize)
	if err := plan.Forward(bins, mesh); err != nil {
		return nil, nil, fmt.Errorf("lombscargle: FFT failed: %w", err)
	}

	re = make([]float64, n)
	im = make([]float64, n)
	for k := 0; k < n; k++ {
		v := complex(real(bins[k]), -imag(bins[k]))
		if tmin != 0 {
			s, c := math.Sincos((w0 + float64(k)*dw) * tmin)
			v *= complex(c, s)
		}
		re[k] = real(v)
		im[k] = imag(v)
	}
	return re, im, nil
}

// extirpolate spreads value at fractional mesh position x over order
// neighbouring points with Lagrange weights, so that sum_m w_m g(m) ~ g(x)
// for any slowly varying g. Indices wrap around the mesh.
func extirpolate(mesh []complex128, x float64, value complex128, order int) {
	size := len(mesh)
	lo := int(math.Floor(x)) - (order-1)/2

	weights := make([]float64, order)
	for m := range weights {
		weights[m] = 1
	}
	for m := 0; m < order; m++ {
		for l := 0; l < order; l++ {
			if l == m {
				continue
			}
			weights[m] *= (x - float64(lo+l)) / float64(m-l)
		}
	}

	for m, w := range weights {
		idx := ((lo+m)%size + size) % size
		mesh[idx] += complex(w*real(value), w*imag(value))
	}
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
