// Package norm converts raw field samples into display-ready magnitudes,
// unit directions, and robust color bounds.
package norm

import (
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/phaseflow/internal/phase"
)

// Default percentile clip for color bounds. Clipping keeps a single
// near-singular outlier from compressing the visible dynamic range of the
// rest of the field.
const (
	DefaultClipLo = 0.02
	DefaultClipHi = 0.98
)

// quantileMinSamples is the smallest magnitude population for which a
// percentile is meaningful; below it bounds fall back to min/max.
const quantileMinSamples = 10

// Options controls color bound derivation.
type Options struct {
	ClipLo float64 // lower quantile in [0,1)
	ClipHi float64 // upper quantile in (ClipLo,1]
}

// DefaultOptions returns the percentile clip defaults.
func DefaultOptions() Options {
	return Options{ClipLo: DefaultClipLo, ClipHi: DefaultClipHi}
}

// Field is a normalized vector field: per-node Euclidean magnitude, a unit
// direction pair, and the clipped magnitude bounds used for color mapping.
//
// Conventions, per node:
//   - singular node: Mag, UnitQ, UnitP are all NaN
//   - equilibrium:   Mag is exactly 0, UnitQ and UnitP are exactly 0
//
// The zero direction is a sentinel, never the result of dividing by zero.
type Field struct {
	Sample *phase.Sample
	Mag    []float64
	UnitQ  []float64
	UnitP  []float64

	// Color bounds over the finite, non-zero magnitude distribution.
	// MagMax is strictly greater than MagMin whenever any such magnitude
	// exists; both are zero for a field with none.
	MagMin float64
	MagMax float64
}

// Normalize computes magnitudes and unit directions for every node, then
// reduces the finite non-zero magnitudes to clipped color bounds. The
// per-node pass runs row-parallel; the reduction is the single
// synchronization point before any color can be assigned.
func Normalize(s *phase.Sample, opt Options) *Field {
	if opt.ClipHi <= opt.ClipLo {
		opt = DefaultOptions()
	}

	n := s.Grid.Len()
	f := &Field{
		Sample: s,
		Mag:    make([]float64, n),
		UnitQ:  make([]float64, n),
		UnitP:  make([]float64, n),
	}

	var wg sync.WaitGroup
	for row := 0; row < s.Grid.Rows(); row++ {
		wg.Add(1)
		go func(row int) {
			defer wg.Done()
			f.normalizeRow(row)
		}(row)
	}
	wg.Wait()

	f.MagMin, f.MagMax = bounds(f.Mag, opt)
	return f
}

func (f *Field) normalizeRow(row int) {
	g := f.Sample.Grid
	for col := 0; col < g.Cols(); col++ {
		i := g.Index(row, col)
		qdot, pdot := f.Sample.Qdot[i], f.Sample.Pdot[i]

		if math.IsNaN(qdot) || math.IsNaN(pdot) {
			f.Mag[i] = math.NaN()
			f.UnitQ[i] = math.NaN()
			f.UnitP[i] = math.NaN()
			continue
		}

		mag := math.Hypot(qdot, pdot)
		f.Mag[i] = mag
		if mag == 0 {
			// Equilibrium: direction is undefined, emit the zero sentinel.
			f.UnitQ[i] = 0
			f.UnitP[i] = 0
			continue
		}
		f.UnitQ[i] = qdot / mag
		f.UnitP[i] = pdot / mag
	}
}

// bounds reduces the finite non-zero magnitudes to clipped color bounds.
func bounds(mags []float64, opt Options) (lo, hi float64) {
	finite := make([]float64, 0, len(mags))
	for _, m := range mags {
		if !math.IsNaN(m) && !math.IsInf(m, 0) && m > 0 {
			finite = append(finite, m)
		}
	}
	if len(finite) == 0 {
		return 0, 0
	}
	sort.Float64s(finite)

	if len(finite) < quantileMinSamples {
		lo, hi = finite[0], finite[len(finite)-1]
	} else {
		lo = stat.Quantile(opt.ClipLo, stat.Empirical, finite, nil)
		hi = stat.Quantile(opt.ClipHi, stat.Empirical, finite, nil)
	}

	if hi <= lo {
		// Uniform magnitude field; widen so color interpolation stays defined.
		hi = lo + 1
	}
	return lo, hi
}

// IsSingular reports whether node (row, col) evaluated to NaN.
func (f *Field) IsSingular(row, col int) bool {
	return math.IsNaN(f.Mag[f.Sample.Grid.Index(row, col)])
}

// IsEquilibrium reports whether node (row, col) is a fixed point.
func (f *Field) IsEquilibrium(row, col int) bool {
	return f.Mag[f.Sample.Grid.Index(row, col)] == 0
}
