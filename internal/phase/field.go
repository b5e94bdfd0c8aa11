package phase

// Field is a Hamiltonian vector field over phase space: the instantaneous
// rate of change of position and momentum at a point. Implementations must
// be stateless with respect to evaluation order; the evaluator may call At
// from multiple goroutines.
//
// args is a fixed parameter tuple passed unchanged to every node.
type Field interface {
	At(q, p float64, args []float64) (qdot, pdot float64)
}

// FieldFunc adapts a plain function to the Field interface.
type FieldFunc func(q, p float64, args []float64) (qdot, pdot float64)

func (f FieldFunc) At(q, p float64, args []float64) (float64, float64) {
	return f(q, p, args)
}

// Sample holds the raw field evaluated at every grid node, row-major.
// Singular nodes carry NaN in both components.
type Sample struct {
	Grid *Grid
	Qdot []float64
	Pdot []float64
}

// At returns the raw vector at node (row, col).
func (s *Sample) At(row, col int) (qdot, pdot float64) {
	i := s.Grid.Index(row, col)
	return s.Qdot[i], s.Pdot[i]
}
