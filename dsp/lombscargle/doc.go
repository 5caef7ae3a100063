// Package lombscargle computes Lomb-Scargle periodograms of unevenly sampled
// series.
//
// Frequencies are angular (radians per time unit), matching the classic
// formulation where the period of a grid point is 2*pi/f. Power is not
// normalized.
//
// Two evaluation strategies are provided. [MethodDirect] evaluates the trig
// sums exactly in O(samples x frequencies). [MethodFast] uses the Press &
// Rybicki extirpolation scheme and an FFT to approximate the same sums on a
// uniform grid in O(samples + frequencies log frequencies).
package lombscargle
