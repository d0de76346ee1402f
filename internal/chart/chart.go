// Package chart renders the static charts produced by the analyzers.
package chart

import (
	"bytes"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/movietrends/internal/utils"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = eris.New("chart: no data to plot")

// Palette used by the analyzers.
var (
	Purple = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	Green  = color.NRGBA{R: 0, G: 128, B: 0, A: 128}
	Red    = color.RGBA{R: 220, G: 20, B: 20, A: 255}
	Blue   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
)

// Style describes the chart frame.
type Style struct {
	Title  string
	XLabel string
	YLabel string
	Color  color.Color
	Width  vg.Length
	Height vg.Length
	Grid   bool
}

func (s Style) color() color.Color {
	if s.Color == nil {
		return color.Black
	}
	return s.Color
}

func (s Style) size() (vg.Length, vg.Length) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = 10 * vg.Inch
	}
	if h <= 0 {
		h = 6 * vg.Inch
	}
	return w, h
}

// HorizontalBars draws one bar per label, bottom to top in the given order.
func HorizontalBars(path string, labels []string, values []float64, st Style) error {
	if len(values) == 0 {
		return eris.Wrap(ErrNoData, st.Title)
	}
	if len(labels) != len(values) {
		return eris.Errorf("chart: %d labels for %d values", len(labels), len(values))
	}
	p := newPlot(st)
	vals := make(plotter.Values, len(values))
	copy(vals, values)
	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return eris.Wrap(err, "chart: bars")
	}
	bars.Horizontal = true
	bars.Color = st.color()
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(labels...)
	return save(p, st, path)
}

// Scatter draws one point per (x, y) pair. With no pairs it still writes
// the framed, empty chart.
func Scatter(path string, xs, ys []float64, st Style) error {
	if len(xs) != len(ys) {
		return eris.Errorf("chart: %d x values for %d y values", len(xs), len(ys))
	}
	p := newPlot(st)
	if len(xs) == 0 {
		return save(p, st, path)
	}
	pts, err := xyPoints(xs, ys, st.Title)
	if err != nil {
		return err
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return eris.Wrap(err, "chart: scatter")
	}
	s.GlyphStyle.Color = st.color()
	s.GlyphStyle.Radius = vg.Points(2)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)
	return save(p, st, path)
}

// Line draws a polyline through the points in order.
func Line(path string, xs, ys []float64, st Style) error {
	pts, err := xyPoints(xs, ys, st.Title)
	if err != nil {
		return err
	}
	p := newPlot(st)
	l, err := plotter.NewLine(pts)
	if err != nil {
		return eris.Wrap(err, "chart: line")
	}
	l.LineStyle.Color = st.color()
	l.LineStyle.Width = vg.Points(1.5)
	p.Add(l)
	return save(p, st, path)
}

func xyPoints(xs, ys []float64, title string) (plotter.XYs, error) {
	if len(xs) == 0 {
		return nil, eris.Wrap(ErrNoData, title)
	}
	if len(xs) != len(ys) {
		return nil, eris.Errorf("chart: %d x values for %d y values", len(xs), len(ys))
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts, nil
}

func newPlot(st Style) *plot.Plot {
	p := plot.New()
	p.Title.Text = st.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = st.XLabel
	p.Y.Label.Text = st.YLabel
	if st.Grid {
		p.Add(plotter.NewGrid())
	}
	return p
}

// save renders into memory, then replaces path atomically.
func save(p *plot.Plot, st Style, path string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		format = "png"
	}
	w, h := st.size()
	wt, err := p.WriterTo(w, h, format)
	if err != nil {
		return eris.Wrapf(err, "chart: render %s", format)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return eris.Wrap(err, "chart: encode")
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return eris.Wrapf(err, "chart: write %s", path)
	}
	return nil
}
