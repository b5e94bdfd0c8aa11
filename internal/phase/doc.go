// Package phase provides the core primitives for phase portrait
// construction over a two dimensional phase space.
//
// The package defines the sampling lattice and the vector field contract:
//
//   - [Grid]: validated (q, p) sampling lattice; momentum indexes rows,
//     position indexes columns
//   - [Field]: vector field interface (qdot, pdot) = f(q, p, args)
//   - [FieldFunc]: adapter for plain functions
//   - [Sample]: raw field values at every lattice node
//
// # Example
//
//	g, _ := phase.NewGrid(phase.Linspace(-5, 5, 21), phase.Linspace(-5, 5, 31))
//	s, _ := eval.Evaluate(g, sys, nil)
//	f := norm.Normalize(s, norm.DefaultOptions())
//
// # Singularities
//
// A field that is undefined at a node reports it by returning NaN (or Inf,
// or dividing by zero); the evaluator records such nodes as NaN pairs and
// downstream stages filter them. Errors are reserved for malformed caller
// code, surfaced as [EvalError] with the offending node's coordinates.
package phase
