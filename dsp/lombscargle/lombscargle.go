package lombscargle

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Method selects how the trig sums are evaluated.
type Method int

const (
	// MethodDirect evaluates every sum exactly.
	MethodDirect Method = iota
	// MethodFast approximates the sums with extirpolation and an FFT.
	MethodFast
)

// String returns the method name used in configuration files.
func (m Method) String() string {
	switch m {
	case MethodDirect:
		return "direct"
	case MethodFast:
		return "fast"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a configuration name to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "direct":
		return MethodDirect, nil
	case "fast":
		return MethodFast, nil
	default:
		return MethodDirect, fmt.Errorf("lombscargle: unknown method %q", s)
	}
}

// Option configures periodogram evaluation.
type Option func(*config)

type config struct {
	method       Method
	precenter    bool
	oversampling int
	order        int
}

func defaultConfig() config {
	return config{
		method:       MethodDirect,
		oversampling: 5,
		order:        4,
	}
}

// WithMethod selects the evaluation strategy.
func WithMethod(m Method) Option {
	return func(c *config) {
		c.method = m
	}
}

// WithPrecenter subtracts the mean of the values before evaluation.
func WithPrecenter() Option {
	return func(c *config) {
		c.precenter = true
	}
}

// WithOversampling sets the FFT grid oversampling factor of the fast method.
func WithOversampling(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.oversampling = n
		}
	}
}

// WithExtirpolationOrder sets the number of grid points each sample is
// spread over by the fast method.
func WithExtirpolationOrder(m int) Option {
	return func(c *config) {
		if m > 1 {
			c.order = m
		}
	}
}

// trigSums holds, per frequency w, sum(y cos wt), sum(y sin wt),
// sum(cos 2wt) and sum(sin 2wt).
type trigSums struct {
	ch, sh []float64
	c2, s2 []float64
}

func newTrigSums(n int) trigSums {
	return trigSums{
		ch: make([]float64, n),
		sh: make([]float64, n),
		c2: make([]float64, n),
		s2: make([]float64, n),
	}
}

// Compute returns the Lomb-Scargle power of values sampled at times for each
// angular frequency in freqs.
func Compute(times, values, freqs []float64, opts ...Option) ([]float64, error) {
	if len(times) == 0 || len(values) == 0 {
		return nil, ErrEmptySeries
	}
	if len(times) != len(values) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(times), len(values))
	}
	if len(freqs) == 0 {
		return nil, ErrEmptyGrid
	}
	for i, f := range freqs {
		if !(f > 0) {
			return nil, fmt.Errorf("%w: index %d is %g", ErrNonPositiveFrequency, i, f)
		}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	y := values
	if cfg.precenter {
		y = centered(values)
	}

	var (
		sums trigSums
		err  error
	)
	switch cfg.method {
	case MethodDirect:
		sums = directSums(times, y, freqs)
	case MethodFast:
		sums, err = fastSums(times, y, freqs, cfg.oversampling, cfg.order)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("lombscargle: unknown method %v", cfg.method)
	}

	return power(len(times), sums), nil
}

func centered(values []float64) []float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v - mean
	}
	return out
}

func directSums(times, values, freqs []float64) trigSums {
	sums := newTrigSums(len(freqs))
	for k, w := range freqs {
		var ch, sh, c2, s2 float64
		for j, t := range times {
			s, c := math.Sincos(w * t)
			ch += values[j] * c
			sh += values[j] * s
			c2 += c*c - s*s
			s2 += 2 * s * c
		}
		sums.ch[k] = ch
		sums.sh[k] = sh
		sums.c2[k] = c2
		sums.s2[k] = s2
	}
	return sums
}

// power folds the trig sums into periodogram values. The phase offset tau
// satisfies tan(2 w tau) = s2/c2, which makes
// sum(cos^2 w(t-tau)) = (n + |c2 + i s2|)/2.
func power(n int, sums trigSums) []float64 {
	r := make([]float64, len(sums.c2))
	vecmath.Magnitude(r, sums.c2, sums.s2)

	nf := float64(n)
	floor := 1e-12 * nf
	out := make([]float64, len(r))
	for i := range out {
		sin, cos := math.Sincos(0.5 * math.Atan2(sums.s2[i], sums.c2[i]))
		yc := cos*sums.ch[i] + sin*sums.sh[i]
		ys := cos*sums.sh[i] - sin*sums.ch[i]
		cc := 0.5 * (nf + r[i])
		ss := 0.5 * (nf - r[i])

		p := 0.0
		if cc > floor {
			p += yc * yc / cc
		}
		// ss vanishes when all phases coincide; the sine term is 0/0 there.
		if ss > floor {
			p += ys * ys / ss
		}
		out[i] = 0.5 * p
	}
	return out
}
