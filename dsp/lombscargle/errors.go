package lombscargle

import "errors"

var (
	// ErrEmptySeries is returned when the series contains no samples.
	ErrEmptySeries = errors.New("lombscargle: empty series")
	// ErrLengthMismatch is returned when times and values differ in length.
	ErrLengthMismatch = errors.New("lombscargle: times and values must have same length")
	// ErrNonPositiveFrequency is returned when a grid frequency is <= 0.
	ErrNonPositiveFrequency = errors.New("lombscargle: frequencies must be > 0")
	// ErrNonUniformGrid is returned by the fast method for unevenly spaced grids.
	ErrNonUniformGrid = errors.New("lombscargle: fast method requires a uniform frequency grid")
	// ErrEmptyGrid is returned when no frequencies are requested.
	ErrEmptyGrid = errors.New("lombscargle: frequency grid must not be empty")
)
