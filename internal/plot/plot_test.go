package plot

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-swls/series"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

type recordingViewer struct {
	shown [][]byte
	err   error
}

func (v *recordingViewer) View(_ context.Context, png []byte) error {
	v.shown = append(v.shown, png)
	return v.err
}

func testFigure() Figure {
	return Figure{
		Title:       "window",
		Samples:     series.Series{{Amplitude: 1, Time: 0}, {Amplitude: -1, Time: 0.7}, {Amplitude: 0.5, Time: 2.1}},
		Frequencies: []float64{0.5, 1, 1.5, 2},
		Power:       []float64{0.1, 0.9, 0.3, 0.2},
	}
}

func TestRenderProducesPNG(t *testing.T) {
	png, err := Render(testFigure(), 4*vg.Inch, 3*vg.Inch)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, pngMagic), "missing PNG signature")
}

func TestRenderMismatchedSpectrum(t *testing.T) {
	fig := testFigure()
	fig.Power = fig.Power[:2]
	_, err := Render(fig, 4*vg.Inch, 3*vg.Inch)
	require.ErrorIs(t, err, ErrMismatchedSpectrum)
}

func TestEmitSaveAndDisplayAreIndependent(t *testing.T) {
	tests := []struct {
		name        string
		save, show  bool
		wantFile    bool
		wantDisplay int
	}{
		{"none", false, false, false, 0},
		{"save", true, false, true, 0},
		{"display", false, true, false, 1},
		{"both", true, true, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer := &recordingViewer{}
			r := NewRenderer(Options{Save: tt.save, Display: tt.show, Viewer: viewer})
			path := filepath.Join(t.TempDir(), "w_windowed.png")

			require.NoError(t, r.Emit(context.Background(), testFigure(), path))

			_, err := os.Stat(path)
			require.Equal(t, tt.wantFile, err == nil)
			require.Len(t, viewer.shown, tt.wantDisplay)
			require.Equal(t, tt.save || tt.show, r.Enabled())
		})
	}
}

func TestEmitViewerError(t *testing.T) {
	boom := errors.New("no display")
	r := NewRenderer(Options{Display: true, Viewer: &recordingViewer{err: boom}})
	err := r.Emit(context.Background(), testFigure(), filepath.Join(t.TempDir(), "x.png"))
	require.ErrorIs(t, err, boom)
}

func TestSystemViewerCustomCommand(t *testing.T) {
	if _, err := os.Stat("/bin/true"); err != nil {
		t.Skip("/bin/true not available")
	}
	v := SystemViewer{Command: []string{"/bin/true"}}
	require.NoError(t, v.View(context.Background(), pngMagic))
}
