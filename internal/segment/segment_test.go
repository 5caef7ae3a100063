package segment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func numberedLines(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%d.5\t%d\n", i, i)
	}
	return out
}

func TestCursorsCount(t *testing.T) {
	tests := []struct {
		n, window, step int
		want            []int
	}{
		{10, 3, 2, []int{0, 2, 4, 6}},
		{9, 3, 2, []int{0, 2, 4, 6}},
		{10, 3, 3, []int{0, 3, 6}},
		{10, 3, 5, []int{0, 5}},
		{10, 4, 10, []int{0}},
		{3, 3, 1, nil},
		{2, 3, 1, nil},
		{0, 3, 1, nil},
		{10, 0, 1, nil},
		{10, 3, 0, nil},
	}
	for _, tt := range tests {
		got := Cursors(tt.n, tt.window, tt.step)
		require.Equal(t, tt.want, got, "n=%d window=%d step=%d", tt.n, tt.window, tt.step)
	}
}

func TestCursorsFormula(t *testing.T) {
	for n := 0; n <= 40; n++ {
		for w := 1; w <= 12; w++ {
			for s := 1; s <= 12; s++ {
				want := 0
				if n > w {
					want = (n-w)/s + 1
				}
				if got := len(Cursors(n, w, s)); got != want {
					t.Fatalf("len(Cursors(%d, %d, %d)) = %d, want %d", n, w, s, got, want)
				}
			}
		}
	}
}

func TestNameRoundTrip(t *testing.T) {
	name := Name("sensor.dat", 150, 300, 150)
	require.Equal(t, "sensor.dat_c00000150_w300_s150.dat", name)

	w, err := ParseName(filepath.Join("output", name))
	require.NoError(t, err)
	require.Equal(t, "sensor.dat", w.Base)
	require.Equal(t, 150, w.Cursor)
	require.Equal(t, 300, w.Size)
	require.Equal(t, 150, w.Step)
}

func TestParseNameRejectsOtherFiles(t *testing.T) {
	for _, name := range []string{
		"sensor.dat",
		"sensor.dat_c00000150_w300_s150.dat_windowed.dat",
		"!sensor.dat_merged_file.dat",
		"sensor_c15_w300_s150.dat",
	} {
		_, err := ParseName(name)
		if !errors.Is(err, ErrNotWindowFile) {
			t.Fatalf("ParseName(%q) err = %v, want ErrNotWindowFile", name, err)
		}
	}
}

func TestWriteWindowsContent(t *testing.T) {
	dir := t.TempDir()
	lines := numberedLines(10)

	m, err := Write(lines, filepath.Join(dir, "in.dat"), 3, 2)
	require.NoError(t, err)
	require.Equal(t, "in.dat", m.Input)
	require.Len(t, m.Windows, 4)

	for i, w := range m.Windows {
		require.Equal(t, 2*i, w.Cursor)
		require.Equal(t, filepath.Join(dir, Name("in.dat", w.Cursor, 3, 2)), w.Path)

		data, err := os.ReadFile(w.Path)
		require.NoError(t, err)
		require.Equal(t, strings.Join(lines[w.Cursor:w.Cursor+3], ""), string(data))
	}
	require.Equal(t, m.Paths()[3], m.Windows[3].Path)
}

func TestWriteShortInputIsNoop(t *testing.T) {
	dir := t.TempDir()
	m, err := Write(numberedLines(3), filepath.Join(dir, "in.dat"), 3, 1)
	require.NoError(t, err)
	require.Empty(t, m.Windows)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestWriteStepLargerThanWindow(t *testing.T) {
	dir := t.TempDir()
	m, err := Write(numberedLines(10), filepath.Join(dir, "in.dat"), 2, 4)
	require.NoError(t, err)
	require.Len(t, m.Windows, 3)

	data, err := os.ReadFile(m.Windows[2].Path)
	require.NoError(t, err)
	require.Equal(t, "8.5\t8\n9.5\t9\n", string(data))
}

func TestWriteInvalidParameters(t *testing.T) {
	_, err := Write(numberedLines(10), filepath.Join(t.TempDir(), "in.dat"), 0, 1)
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Write(numberedLines(10), filepath.Join(t.TempDir(), "in.dat"), 3, -1)
	require.ErrorIs(t, err, ErrInvalidStep)
}

func TestWriteMissingDirectory(t *testing.T) {
	_, err := Write(numberedLines(10), filepath.Join(t.TempDir(), "nope", "in.dat"), 3, 2)
	require.Error(t, err)
}
