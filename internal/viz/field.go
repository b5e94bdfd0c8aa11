package viz

import (
	"math"

	"github.com/san-kum/phaseflow/internal/norm"
)

// equilibriumMark replaces the character cell at a fixed point so it reads
// as a marker, not a zero-length stroke.
const equilibriumMark = '●'

// FieldToASCII renders a normalized field as braille direction segments on
// a width x height character canvas. Singular nodes are left blank,
// equilibria are marked, and the q/p axes are drawn where they cross the
// window.
func FieldToASCII(f *norm.Field, width, height int) string {
	if f == nil || width <= 0 || height <= 0 {
		return ""
	}

	g := f.Sample.Grid
	subW := width * 2
	subH := height * 4

	minQ, maxQ := axisBounds(g.Q)
	minP, maxP := axisBounds(g.P)
	rangeQ := maxQ - minQ
	rangeP := maxP - minP
	if rangeQ == 0 {
		rangeQ = 1
	}
	if rangeP == 0 {
		rangeP = 1
	}

	toX := func(q float64) float64 { return (q - minQ) / rangeQ * float64(subW-1) }
	toY := func(p float64) float64 { return float64(subH-1) - (p-minP)/rangeP*float64(subH-1) }

	// Per-node segment length in sub-pixels: a fraction of the cell.
	segQ := float64(subW) / float64(g.Cols()) * 0.45
	segP := float64(subH) / float64(g.Rows()) * 0.45

	canvas := NewCanvas(width, height)

	// Axes first so field strokes stay visible on top.
	if minQ <= 0 && maxQ >= 0 {
		x := int(toX(0))
		for y := 0; y < subH; y++ {
			canvas.Set(x, y)
		}
	}
	if minP <= 0 && maxP >= 0 {
		y := int(toY(0))
		for x := 0; x < subW; x++ {
			canvas.Set(x, y)
		}
	}

	type mark struct{ x, y int }
	var equilibria []mark

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if f.IsSingular(row, col) {
				continue
			}
			q, p := g.At(row, col)
			cx, cy := toX(q), toY(p)

			if f.IsEquilibrium(row, col) {
				equilibria = append(equilibria, mark{int(cx), int(cy)})
				continue
			}

			i := g.Index(row, col)
			// Screen y grows downward, momentum grows upward.
			dx := f.UnitQ[i] * segQ / 2
			dy := -f.UnitP[i] * segP / 2
			canvas.DrawLine(
				int(cx-dx), int(cy-dy),
				int(cx+dx), int(cy+dy),
			)
		}
	}

	for _, m := range equilibria {
		canvas.Mark(m.x, m.y, equilibriumMark)
	}

	return canvas.String()
}

// MagnitudeProfile extracts the finite magnitudes along one grid row, for
// terminal graphing. Singular nodes are dropped rather than plotted as NaN.
func MagnitudeProfile(f *norm.Field, row int) []float64 {
	g := f.Sample.Grid
	if row < 0 || row >= g.Rows() {
		return nil
	}
	out := make([]float64, 0, g.Cols())
	for col := 0; col < g.Cols(); col++ {
		m := f.Mag[g.Index(row, col)]
		if !math.IsNaN(m) {
			out = append(out, m)
		}
	}
	return out
}

func axisBounds(samples []float64) (lo, hi float64) {
	lo, hi = samples[0], samples[0]
	for _, v := range samples {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
