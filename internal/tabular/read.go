package tabular

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-swls/series"
)

// maxLine bounds the length of a single line.
const maxLine = 64 << 20

// ReadLines returns the lines of path with their terminators preserved. The
// last line may lack a terminator.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return SplitLines(f)
}

// SplitLines reads r to EOF and splits it into terminator-preserving lines.
// "\n", "\r\n" and a bare "\r" each end a line.
func SplitLines(r io.Reader) ([]string, error) {
	sc := newLineScanner(r)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLine)
	sc.Split(scanLines)
	return sc
}

// scanLines is a bufio.SplitFunc like bufio.ScanLines that keeps the
// terminator and also accepts a bare '\r'.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	i := bytes.IndexAny(data, "\r\n")
	switch {
	case i < 0:
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	case data[i] == '\n':
		return i + 1, data[:i+1], nil
	case i+1 < len(data):
		if data[i+1] == '\n' {
			return i + 2, data[:i+2], nil
		}
		return i + 1, data[:i+1], nil
	case atEOF:
		return i + 1, data[:i+1], nil
	}
	// A '\r' at the end of the buffer may be the start of "\r\n".
	return 0, nil, nil
}

// ReadSamples parses path as (amplitude, time) rows. See [ParseSamples].
func ReadSamples(path string) (series.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSamples(f)
}

// ParseSamples parses tab-delimited rows, reading column 0 as amplitude and
// column 1 as timestamp. Rows that are empty, short or non-numeric are
// dropped; extra columns are ignored. Only I/O failures are returned.
func ParseSamples(r io.Reader) (series.Series, error) {
	var out series.Series
	err := scan(r, func(fields []string) {
		if s, ok := parseSample(fields); ok {
			out = append(out, s)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadRows parses path as rows of floats. See [ParseRows].
func ReadRows(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseRows(f)
}

// ParseRows parses tab-delimited rows of floats. Rows with a non-numeric
// field are dropped; rows may differ in length.
func ParseRows(r io.Reader) ([][]float64, error) {
	var out [][]float64
	err := scan(r, func(fields []string) {
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := parseFloat(field)
			if err != nil {
				return
			}
			row[i] = v
		}
		out = append(out, row)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scan calls fn with the tab-separated fields of every non-empty line of r.
// Quotes have no special meaning, so every row is exactly one line.
func scan(r io.Reader, fn func(fields []string)) error {
	sc := newLineScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		fn(strings.Split(line, "\t"))
	}
	return sc.Err()
}

func parseSample(rec []string) (series.Sample, bool) {
	if len(rec) < 2 {
		return series.Sample{}, false
	}
	amp, err := parseFloat(rec[0])
	if err != nil {
		return series.Sample{}, false
	}
	t, err := parseFloat(rec[1])
	if err != nil {
		return series.Sample{}, false
	}
	return series.Sample{Amplitude: amp, Time: t}, true
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
