package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-swls/series"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestReadLinesKeepsTerminators(t *testing.T) {
	p := writeFile(t, t.TempDir(), "in.dat", "a\tb\n\nc\r\nlast")

	lines, err := ReadLines(p)
	require.NoError(t, err)
	require.Equal(t, []string{"a\tb\n", "\n", "c\r\n", "last"}, lines)
	require.Equal(t, "a\tb\n\nc\r\nlast", strings.Join(lines, ""))
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "missing.dat"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseSamplesDropsMalformedRows(t *testing.T) {
	in := strings.Join([]string{
		"1.5\t0.0",
		"amp\ttime",
		"2.5\t1.0\textra",
		"",
		"3.5",
		"x\t2.0",
		" 4.5 \t 3.0 ",
		"5.5\tnope",
		"-6e-3\t4.25",
	}, "\n") + "\n"

	got, err := ParseSamples(strings.NewReader(in))
	require.NoError(t, err)

	want := series.Series{
		{Amplitude: 1.5, Time: 0},
		{Amplitude: 2.5, Time: 1},
		{Amplitude: 4.5, Time: 3},
		{Amplitude: -6e-3, Time: 4.25},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseSamples mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSamplesUnparsableFileIsEmpty(t *testing.T) {
	got, err := ParseSamples(strings.NewReader("header\nfoo\tbar\n\n"))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFormatRow(t *testing.T) {
	require.Equal(t, "0.01\t628.3185307179587\t1e-05\t-2", FormatRow([]float64{0.01, 628.3185307179587, 1e-5, -2}))
	require.Equal(t, "", FormatRow(nil))
}

func TestWriteRowsFormat(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.dat")
	require.NoError(t, os.WriteFile(p, []byte("stale content that must disappear\n"), 0o644))

	require.NoError(t, WriteRows(p, [][]float64{{1, 2.5}, {3, 4, 5}}))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "1\t2.5\n3\t4\t5\n", string(data))
}

func TestWriteReadRoundTrip(t *testing.T) {
	want := series.Series{
		{Amplitude: 0.1, Time: 1e-9},
		{Amplitude: -123.456789012345, Time: 1.0 / 3.0},
		{Amplitude: 6.02214076e23, Time: 42},
	}
	p := filepath.Join(t.TempDir(), "series.dat")
	require.NoError(t, WriteRows(p, want.Rows()))

	got, err := ReadSamples(p)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteLinesAndAppend(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.dat")
	b := filepath.Join(dir, "b.dat")
	merged := filepath.Join(dir, "merged.dat")

	require.NoError(t, WriteLines(a, []string{"1\n", "2\n"}))
	require.NoError(t, WriteLines(b, []string{"3\n"}))

	n, err := AppendFile(merged, a)
	require.NoError(t, err)
	require.EqualValues(t, 4, n)
	_, err = AppendFile(merged, b)
	require.NoError(t, err)

	data, err := os.ReadFile(merged)
	require.NoError(t, err)
	require.Equal(t, "1\n2\n3\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3, "temporary files must not be left behind")
}

func TestAppendFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := AppendFile(filepath.Join(dir, "merged.dat"), filepath.Join(dir, "missing.dat"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRows(t *testing.T) {
	got, err := ParseRows(strings.NewReader("1\t2\t3\nx\t1\n4\n\n5\t6\n"))
	require.NoError(t, err)
	if diff := cmp.Diff([][]float64{{1, 2, 3}, {4}, {5, 6}}, got); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSamplesStrayQuoteDropsOnlyItsRow(t *testing.T) {
	got, err := ParseSamples(strings.NewReader("1\t0\n\"oops\t1\n2\t2\n3\t3\n4\"\t3.5\n4\t4\n"))
	require.NoError(t, err)

	want := series.Series{
		{Amplitude: 1, Time: 0},
		{Amplitude: 2, Time: 2},
		{Amplitude: 3, Time: 3},
		{Amplitude: 4, Time: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseSamples mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSamplesLineEndings(t *testing.T) {
	for name, in := range map[string]string{
		"lf":   "1\t0\n2\t1\n3\t2",
		"crlf": "1\t0\r\n2\t1\r\n3\t2\r\n",
		"cr":   "1\t0\r2\t1\r3\t2\r",
	} {
		got, err := ParseSamples(strings.NewReader(in))
		require.NoError(t, err, name)
		require.Len(t, got, 3, name)
		require.Equal(t, series.Sample{Amplitude: 3, Time: 2}, got[2], name)
	}
}

func TestSplitLinesBareCarriageReturn(t *testing.T) {
	in := "a\rb\r\nc\n\rd\r"
	lines, err := SplitLines(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"a\r", "b\r\n", "c\n", "\r", "d\r"}, lines)
	require.Equal(t, in, strings.Join(lines, ""))
}

func TestSplitLinesCarriageReturnAcrossReads(t *testing.T) {
	// A reader that returns one byte at a time splits "\r\n" across reads.
	lines, err := SplitLines(iotest.OneByteReader(strings.NewReader("x\r\ny\rz")))
	require.NoError(t, err)
	require.Equal(t, []string{"x\r\n", "y\r", "z"}, lines)
}
