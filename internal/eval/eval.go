// Package eval samples a vector field over a phase space grid.
//
// Every node is independent, so rows are evaluated concurrently. A panic in
// the caller's field code is a programmer error and aborts the evaluation
// with the offending node's coordinates; a singular numeric result (NaN or
// Inf) is recorded as a NaN sample and evaluation continues.
package eval

import (
	"math"
	"sync"

	"github.com/san-kum/phaseflow/internal/phase"
)

// Evaluate samples f at every node of g, passing args unchanged to each
// call. The returned sample has the grid's shape; singular nodes hold NaN
// in both components.
func Evaluate(g *phase.Grid, f phase.Field, args []float64) (*phase.Sample, error) {
	s := &phase.Sample{
		Grid: g,
		Qdot: make([]float64, g.Len()),
		Pdot: make([]float64, g.Len()),
	}

	errs := make([]error, g.Rows())

	var wg sync.WaitGroup
	for row := 0; row < g.Rows(); row++ {
		wg.Add(1)
		go func(row int) {
			defer wg.Done()
			errs[row] = evalRow(s, f, args, row)
		}(row)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func evalRow(s *phase.Sample, f phase.Field, args []float64, row int) error {
	g := s.Grid
	for col := 0; col < g.Cols(); col++ {
		q, p := g.At(row, col)

		qdot, pdot, err := evalNode(f, q, p, args, row, col)
		if err != nil {
			return err
		}

		// A singularity in either component invalidates the whole vector:
		// it has no direction.
		if !finite(qdot) || !finite(pdot) {
			qdot, pdot = math.NaN(), math.NaN()
		}

		i := g.Index(row, col)
		s.Qdot[i] = qdot
		s.Pdot[i] = pdot
	}
	return nil
}

func evalNode(f phase.Field, q, p float64, args []float64, row, col int) (qdot, pdot float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &phase.EvalError{Row: row, Col: col, Q: q, P: p, Panic: r}
		}
	}()
	qdot, pdot = f.At(q, p, args)
	return qdot, pdot, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
