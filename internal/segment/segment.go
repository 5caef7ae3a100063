// Package segment slices a line sequence into overlapping fixed-size windows
// and writes each window to its own file.
package segment

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/cwbudde/algo-swls/internal/tabular"
)

var (
	// ErrInvalidWindow is returned for window sizes <= 0.
	ErrInvalidWindow = errors.New("segment: window size must be > 0")
	// ErrInvalidStep is returned for step sizes <= 0.
	ErrInvalidStep = errors.New("segment: step must be > 0")
	// ErrNotWindowFile is returned by ParseName for foreign file names.
	ErrNotWindowFile = errors.New("segment: not a window file name")
)

// Ext is the extension of window files.
const Ext = ".dat"

var namePattern = regexp.MustCompile(`^(.*)_c(\d{8,})_w(\d+)_s(\d+)\.dat$`)

// Window identifies one window file.
type Window struct {
	Path   string
	Base   string
	Cursor int
	Size   int
	Step   int
}

// Manifest lists the window files produced from one input, in cursor order.
type Manifest struct {
	Input   string
	Windows []Window
}

// Paths returns the window file paths in cursor order.
func (m Manifest) Paths() []string {
	out := make([]string, len(m.Windows))
	for i, w := range m.Windows {
		out[i] = w.Path
	}
	return out
}

// Cursors returns the start offsets of all complete windows of size window
// advancing by step over n lines. Inputs not longer than one window yield
// none.
func Cursors(n, window, step int) []int {
	if window <= 0 || step <= 0 || n <= window {
		return nil
	}
	out := make([]int, 0, (n-window)/step+1)
	for c := 0; c+window <= n; c += step {
		out = append(out, c)
	}
	return out
}

// Name returns the window file name for base at cursor.
func Name(base string, cursor, window, step int) string {
	return fmt.Sprintf("%s_c%08d_w%d_s%d%s", base, cursor, window, step, Ext)
}

// ParseName decodes a name produced by [Name]. Directory components are
// ignored.
func ParseName(name string) (Window, error) {
	m := namePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return Window{}, fmt.Errorf("%w: %q", ErrNotWindowFile, name)
	}
	cursor, err := strconv.Atoi(m[2])
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: %w", ErrNotWindowFile, name, err)
	}
	size, err := strconv.Atoi(m[3])
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: %w", ErrNotWindowFile, name, err)
	}
	step, err := strconv.Atoi(m[4])
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: %w", ErrNotWindowFile, name, err)
	}
	return Window{Path: name, Base: m[1], Cursor: cursor, Size: size, Step: step}, nil
}

// Write stores every window of lines as prefix_cNNNNNNNN_wW_sS.dat, where
// prefix is a path whose base name identifies the input. Each file holds
// lines [cursor, cursor+window) byte for byte.
func Write(lines []string, prefix string, window, step int) (Manifest, error) {
	if window <= 0 {
		return Manifest{}, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	if step <= 0 {
		return Manifest{}, fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}

	dir, base := filepath.Split(prefix)
	m := Manifest{Input: base}
	for _, c := range Cursors(len(lines), window, step) {
		path := filepath.Join(dir, Name(base, c, window, step))
		if err := tabular.WriteLines(path, lines[c:c+window]); err != nil {
			return m, fmt.Errorf("segment: write window at cursor %d: %w", c, err)
		}
		m.Windows = append(m.Windows, Window{
			Path:   path,
			Base:   base,
			Cursor: c,
			Size:   window,
			Step:   step,
		})
	}
	return m, nil
}
