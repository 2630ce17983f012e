// Package render draws sampled signals with gonum/plot, as continuous line
// plots or as discrete stem plots.
package render

import (
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/aroproduction/commviz/gonumExtensions"
	"github.com/aroproduction/commviz/internal/errors"
	"github.com/aroproduction/commviz/signal"
)

// Style selects how samples are drawn.
type Style int

const (
	// Line joins consecutive samples.
	Line Style = iota
	// Stem draws a vertical segment and a marker per sample.
	Stem
)

// StyleFor maps a signal display mode to a plot style.
func StyleFor(mode signal.Mode) Style {
	if mode == signal.Discrete {
		return Stem
	}
	return Line
}

// Default figure size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Series is one named amplitude vector over the figure's time axis.
type Series struct {
	Name string
	Y    []float64
}

// Figure is a set of series sharing one time axis.
type Figure struct {
	Title  string
	Style  Style
	T      []float64
	Series []Series
}

// FromSampled returns a single series figure for s.
func FromSampled(title string, s signal.Sampled, style Style) Figure {
	return Figure{
		Title:  title,
		Style:  style,
		T:      s.T(),
		Series: []Series{{Name: title, Y: s.Y}},
	}
}

// Plot builds the gonum plot.
func (f Figure) Plot() (*plot.Plot, error) {
	if len(f.Series) == 0 {
		return nil, errors.Wrap(errors.ErrShapeMismatch, "figure has no series")
	}
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Amplitude"
	p.Add(plotter.NewGrid())

	for i, s := range f.Series {
		if len(s.Y) != len(f.T) {
			return nil, errors.Wrapf(errors.ErrShapeMismatch,
				"series %q has %d samples, time axis %d", s.Name, len(s.Y), len(f.T))
		}
		if gonumExtensions.NANORINF(s.Y) {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrInvalidRange, "series %q has non-finite samples", s.Name),
				"narrow the time range or lower the growth rate")
		}
		pts := make(plotter.XYs, len(f.T))
		for j := range f.T {
			pts[j].X = f.T[j]
			pts[j].Y = s.Y[j]
		}
		var err error
		if f.Style == Stem {
			err = addStems(p, s.Name, pts, i)
		} else {
			err = addLine(p, s.Name, pts, i)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "series %q", s.Name)
		}
	}
	if len(f.Series) > 1 {
		p.Legend.Top = true
	}
	return p, nil
}

func addLine(p *plot.Plot, name string, pts plotter.XYs, index int) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = plotutil.Color(index)
	l.Dashes = plotutil.Dashes(index)
	p.Add(l)
	p.Legend.Add(name, l)
	return nil
}

func addStems(p *plot.Plot, name string, pts plotter.XYs, index int) error {
	color := plotutil.Color(index)
	for _, pt := range pts {
		stem, err := plotter.NewLine(plotter.XYs{{X: pt.X, Y: 0}, pt})
		if err != nil {
			return err
		}
		stem.Color = color
		p.Add(stem)
	}
	heads, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	heads.Color = color
	heads.Shape = draw.CircleGlyph{}
	p.Add(heads)
	p.Legend.Add(name, heads)
	return nil
}

// Encode writes the figure to w in format ("png", "svg", "pdf", ...).
func (f Figure) Encode(w io.Writer, format string, width, height vg.Length) error {
	p, err := f.Plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return errors.Wrapf(err, "unsupported plot format %q", format)
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save writes the figure to path, choosing the format from its extension.
func (f Figure) Save(path string, width, height vg.Length) error {
	p, err := f.Plot()
	if err != nil {
		return err
	}
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		return errors.Wrapf(errors.ErrInvalidParameter, "output path %q has no extension", path)
	}
	return p.Save(width, height, path)
}
