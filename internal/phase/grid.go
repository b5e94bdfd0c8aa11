package phase

import "math"

// Grid is the 2D sampling lattice over phase space. Momentum samples index
// rows, position samples index columns, matching plotting orientation.
// A Grid is immutable after construction.
type Grid struct {
	Q []float64 // position samples (columns)
	P []float64 // momentum samples (rows)
}

// NewGrid validates both axes and builds the lattice descriptor.
// Each axis needs at least two finite, strictly monotonic samples.
func NewGrid(q, p []float64) (*Grid, error) {
	if err := checkAxis(q); err != nil {
		return nil, &GridError{Axis: "position", Wrapped: err}
	}
	if err := checkAxis(p); err != nil {
		return nil, &GridError{Axis: "momentum", Wrapped: err}
	}
	g := &Grid{
		Q: append([]float64(nil), q...),
		P: append([]float64(nil), p...),
	}
	return g, nil
}

func checkAxis(samples []float64) error {
	if len(samples) < 2 {
		return ErrTooFewPoints
	}
	for _, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	increasing := samples[1] > samples[0]
	for i := 1; i < len(samples); i++ {
		if increasing && samples[i] <= samples[i-1] {
			return ErrNotMonotonic
		}
		if !increasing && samples[i] >= samples[i-1] {
			return ErrNotMonotonic
		}
	}
	return nil
}

// Linspace returns n evenly spaced samples over [lo, hi] inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Rows returns the momentum sample count.
func (g *Grid) Rows() int { return len(g.P) }

// Cols returns the position sample count.
func (g *Grid) Cols() int { return len(g.Q) }

// Len returns the total node count.
func (g *Grid) Len() int { return len(g.P) * len(g.Q) }

// Index maps (row, col) to the row-major node index.
func (g *Grid) Index(row, col int) int { return row*len(g.Q) + col }

// At returns the phase space coordinates of node (row, col).
func (g *Grid) At(row, col int) (q, p float64) {
	return g.Q[col], g.P[row]
}

// StepQ returns the smallest absolute spacing along the position axis.
func (g *Grid) StepQ() float64 { return minStep(g.Q) }

// StepP returns the smallest absolute spacing along the momentum axis.
func (g *Grid) StepP() float64 { return minStep(g.P) }

func minStep(samples []float64) float64 {
	step := math.Abs(samples[1] - samples[0])
	for i := 2; i < len(samples); i++ {
		if d := math.Abs(samples[i] - samples[i-1]); d < step {
			step = d
		}
	}
	return step
}
