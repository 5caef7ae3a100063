package batch

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cwbudde/algo-swls/internal/segment"
)

// File name markers. Merged and summary outputs carry MergedMarker,
// per-window outputs carry WindowedMarker.
const (
	MergedMarker   = "!"
	WindowedMarker = "windowed"
	windowedSuffix = "_" + WindowedMarker
)

// WindowedPath returns the periodogram output path of a window file.
func WindowedPath(window string) string {
	return window + windowedSuffix + ".dat"
}

// PlotPath returns the figure path of a window file.
func PlotPath(window string) string {
	return window + windowedSuffix + ".png"
}

// MergedPath returns the merged output path for input in dir.
func MergedPath(dir, input string) string {
	return filepath.Join(dir, MergedMarker+filepath.Base(input)+"_merged_file.dat")
}

// SummaryPath returns the per-window peak summary path for input in dir.
func SummaryPath(dir, input string) string {
	return filepath.Join(dir, MergedMarker+filepath.Base(input)+"_peaks.dat")
}

// Discover returns the window files in dir: every *.dat file that is
// neither a merged nor a windowed output, in window order.
func Discover(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+segment.Ext))
	if err != nil {
		return nil, fmt.Errorf("batch: discover %s: %w", dir, err)
	}
	out := matches[:0]
	for _, m := range matches {
		name := filepath.Base(m)
		if strings.Contains(name, MergedMarker) || strings.Contains(name, WindowedMarker) {
			continue
		}
		out = append(out, m)
	}
	sortWindows(out)
	return out, nil
}

// GroupWindows splits window paths by the input they were cut from. The
// manifests follow input name order and list windows in cursor order. Paths
// that do not follow the window naming convention are returned in rest.
func GroupWindows(paths []string) (manifests []segment.Manifest, rest []string) {
	sorted := append([]string(nil), paths...)
	sortWindows(sorted)
	for _, p := range sorted {
		w, err := segment.ParseName(p)
		if err != nil {
			rest = append(rest, p)
			continue
		}
		w.Path = p
		if n := len(manifests); n == 0 || manifests[n-1].Input != w.Base {
			manifests = append(manifests, segment.Manifest{Input: w.Base})
		}
		m := &manifests[len(manifests)-1]
		m.Windows = append(m.Windows, w)
	}
	return manifests, rest
}

// DiscoverWindowed returns every windowed output in dir in window order.
func DiscoverWindowed(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+windowedSuffix+".dat"))
	if err != nil {
		return nil, fmt.Errorf("batch: discover windowed outputs in %s: %w", dir, err)
	}
	sortWindows(matches)
	return matches, nil
}

type windowKey struct {
	base   string
	cursor int
	name   string
}

func keyOf(path string) windowKey {
	name := filepath.Base(path)
	w, err := segment.ParseName(strings.TrimSuffix(name, windowedSuffix+".dat"))
	if err != nil {
		return windowKey{base: name, cursor: -1, name: name}
	}
	return windowKey{base: w.Base, cursor: w.Cursor, name: name}
}

// sortWindows orders paths by input base name, then by embedded cursor.
// Names that do not follow the window convention sort by name.
func sortWindows(paths []string) {
	keys := make(map[string]windowKey, len(paths))
	for _, p := range paths {
		keys[p] = keyOf(p)
	}
	sort.SliceStable(paths, func(i, j int) bool {
		a, b := keys[paths[i]], keys[paths[j]]
		if a.base != b.base {
			return a.base < b.base
		}
		if a.cursor != b.cursor {
			return a.cursor < b.cursor
		}
		return a.name < b.name
	})
}
