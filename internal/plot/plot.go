// Package plot renders the two-panel diagnostic figure of one window: raw
// samples on top, periodogram below.
package plot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cwbudde/algo-swls/series"
)

// ErrMismatchedSpectrum is returned when frequencies and power differ in length.
var ErrMismatchedSpectrum = errors.New("plot: frequencies and power must have same length")

// Figure is the data shown in one diagnostic image.
type Figure struct {
	Title       string
	Samples     series.Series
	Frequencies []float64
	Power       []float64
}

// Options selects what happens to a rendered figure. Display and Save are
// independent.
type Options struct {
	Save    bool
	Display bool
	Width   vg.Length
	Height  vg.Length
	Viewer  Viewer
}

// DefaultOptions saves a 640x480 point image and does not display it.
func DefaultOptions() Options {
	return Options{
		Save:   true,
		Width:  6.4 * vg.Inch,
		Height: 4.8 * vg.Inch,
		Viewer: SystemViewer{},
	}
}

// Renderer emits figures according to its options.
type Renderer struct {
	opts Options
}

// NewRenderer returns a renderer. Zero sizes fall back to the defaults.
func NewRenderer(opts Options) *Renderer {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Viewer == nil {
		opts.Viewer = def.Viewer
	}
	return &Renderer{opts: opts}
}

// Enabled reports whether Emit does any work.
func (r *Renderer) Enabled() bool {
	return r.opts.Save || r.opts.Display
}

// Emit renders fig and, depending on the options, writes it to path as PNG
// and hands it to the viewer.
func (r *Renderer) Emit(ctx context.Context, fig Figure, path string) error {
	if !r.Enabled() {
		return nil
	}
	png, err := Render(fig, r.opts.Width, r.opts.Height)
	if err != nil {
		return err
	}
	if r.opts.Display {
		if err := r.opts.Viewer.View(ctx, png); err != nil {
			return fmt.Errorf("plot: display: %w", err)
		}
	}
	if r.opts.Save {
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return fmt.Errorf("plot: save: %w", err)
		}
	}
	return nil
}

// Render draws fig into a PNG of the given size.
func Render(fig Figure, width, height vg.Length) ([]byte, error) {
	if len(fig.Frequencies) != len(fig.Power) {
		return nil, fmt.Errorf("%w: %d != %d", ErrMismatchedSpectrum, len(fig.Frequencies), len(fig.Power))
	}

	source, err := samplesPlot(fig)
	if err != nil {
		return nil, err
	}
	pgram, err := spectrumPlot(fig)
	if err != nil {
		return nil, err
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	plots := [][]*plot.Plot{{source}, {pgram}}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("plot: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func samplesPlot(fig Figure) (*plot.Plot, error) {
	xys := make(plotter.XYs, len(fig.Samples))
	for i, s := range fig.Samples {
		xys[i].X = s.Time
		xys[i].Y = s.Amplitude
	}

	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = "time"
	p.Y.Label.Text = "amplitude"

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("plot: samples: %w", err)
	}
	sc.GlyphStyle.Shape = draw.PlusGlyph{}
	sc.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(sc)
	return p, nil
}

func spectrumPlot(fig Figure) (*plot.Plot, error) {
	xys := make(plotter.XYs, len(fig.Frequencies))
	for i := range xys {
		xys[i].X = fig.Frequencies[i]
		xys[i].Y = fig.Power[i]
	}

	p := plot.New()
	p.X.Label.Text = "angular frequency"
	p.Y.Label.Text = "power"

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("plot: periodogram: %w", err)
	}
	line.LineStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(line)
	return p, nil
}
