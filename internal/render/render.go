// Package render assembles a normalized vector field into a phase portrait
// plot. It maps normalized values to visual parameters only; all numeric
// policy (NaN sentinels, zero directions, color bounds) is decided upstream.
package render

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/phaseflow/internal/norm"
)

// Mode selects the glyph style for the portrait.
type Mode int

const (
	// ModeArrows draws a fixed-length arrow per node, colored by magnitude.
	ModeArrows Mode = iota
	// ModeLines draws headless flow segments, closer to a streamline look.
	ModeLines
	// ModeBoth layers arrows over flow segments.
	ModeBoth
)

// ParseMode maps a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "arrows":
		return ModeArrows, nil
	case "lines":
		return ModeLines, nil
	case "", "both":
		return ModeBoth, nil
	}
	return 0, fmt.Errorf("unknown render mode %q (have arrows, lines, both)", s)
}

// Spec configures the visual encoding. The zero value renders both glyph
// styles with the default colormap on a light background.
type Spec struct {
	Mode     Mode
	Colormap string
	Dark     bool // black background, axes hidden
	Title    string
}

// Glyph geometry as fractions of the grid cell, chosen so neighboring
// glyphs never overlap.
const (
	arrowFrac = 0.45
	lineFrac  = 0.85
	headFrac  = 0.16
)

// head wing rotation: 150 degrees off the shaft direction.
const (
	headCos = -0.8660254037844387
	headSin = 0.5
)

// Portrait builds the plot for a normalized field. Singular nodes are
// omitted; equilibria are drawn as point markers instead of invisible
// zero-length glyphs. Nodes are walked in row-major order and nothing is
// randomized, so identical inputs produce identical plots.
func Portrait(f *norm.Field, spec Spec) (*plot.Plot, error) {
	cm, err := NewColorMap(spec.Colormap, f.MagMin, f.MagMax)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = "q"
	p.Y.Label.Text = "p"
	if spec.Dark {
		p.BackgroundColor = color.Black
		p.HideAxes()
	}

	g := f.Sample.Grid
	sq, sp := g.StepQ(), g.StepP()

	var equilibria plotter.XYs
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			i := g.Index(row, col)
			q, pp := g.At(row, col)

			if f.IsSingular(row, col) {
				continue
			}
			if f.IsEquilibrium(row, col) {
				equilibria = append(equilibria, plotter.XY{X: q, Y: pp})
				continue
			}

			uq, up := f.UnitQ[i], f.UnitP[i]
			c := cm.At(f.Mag[i])

			if spec.Mode == ModeLines || spec.Mode == ModeBoth {
				seg := segment(q, pp, uq, up, sq, sp, lineFrac)
				if err := addLine(p, seg, c, vg.Points(0.6)); err != nil {
					return nil, err
				}
			}
			if spec.Mode == ModeArrows || spec.Mode == ModeBoth {
				if err := addLine(p, arrow(q, pp, uq, up, sq, sp), c, vg.Points(1)); err != nil {
					return nil, err
				}
			}
		}
	}

	if len(equilibria) > 0 {
		marker, err := plotter.NewScatter(equilibria)
		if err != nil {
			return nil, err
		}
		marker.GlyphStyle.Shape = draw.CircleGlyph{}
		marker.GlyphStyle.Radius = vg.Points(2.5)
		if spec.Dark {
			marker.GlyphStyle.Color = color.White
		} else {
			marker.GlyphStyle.Color = color.Black
		}
		p.Add(marker)
	}

	// Pad axes by one cell so edge glyphs are not clipped.
	p.X.Min = floats.Min(g.Q) - sq
	p.X.Max = floats.Max(g.Q) + sq
	p.Y.Min = floats.Min(g.P) - sp
	p.Y.Max = floats.Max(g.P) + sp

	return p, nil
}

func addLine(p *plot.Plot, pts plotter.XYs, c color.Color, w vg.Length) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = c
	l.Width = w
	p.Add(l)
	return nil
}

// segment returns a headless glyph centered on the node, spanning frac of
// the cell along the unit direction. The extent scales per axis so glyphs
// stay legible on anisotropic grids.
func segment(q, p, uq, up, sq, sp, frac float64) plotter.XYs {
	hq := uq * frac / 2 * sq
	hp := up * frac / 2 * sp
	return plotter.XYs{
		{X: q - hq, Y: p - hp},
		{X: q + hq, Y: p + hp},
	}
}

// arrow returns the node's arrow glyph as a single polyline: shaft, then
// both head wings retraced through the tip.
func arrow(q, p, uq, up, sq, sp float64) plotter.XYs {
	hq := uq * arrowFrac / 2 * sq
	hp := up * arrowFrac / 2 * sp
	tipQ, tipP := q+hq, p+hp

	// wings: shaft direction rotated by +/-150 degrees
	w1q := uq*headCos - up*headSin
	w1p := uq*headSin + up*headCos
	w2q := uq*headCos + up*headSin
	w2p := -uq*headSin + up*headCos

	return plotter.XYs{
		{X: q - hq, Y: p - hp},
		{X: tipQ, Y: tipP},
		{X: tipQ + w1q*headFrac*sq, Y: tipP + w1p*headFrac*sp},
		{X: tipQ, Y: tipP},
		{X: tipQ + w2q*headFrac*sq, Y: tipP + w2p*headFrac*sp},
	}
}

// Save writes the plot to path; the format comes from the file extension
// (png, svg, pdf, ...). Backend errors are returned unmodified.
func Save(p *plot.Plot, widthIn, heightIn float64, path string) error {
	return p.Save(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, path)
}

// Encode renders the plot into memory in the given format. Two encodes of
// the same plot are byte-identical, which regression tests rely on.
func Encode(p *plot.Plot, widthIn, heightIn float64, format string) ([]byte, error) {
	wt, err := p.WriterTo(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
