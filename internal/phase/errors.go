package phase

import (
	"errors"
	"fmt"
)

// Domain errors for grid construction and field evaluation.
var (
	// ErrTooFewPoints indicates an axis with fewer than two samples.
	ErrTooFewPoints = errors.New("phase: axis needs at least 2 samples")

	// ErrNonFinite indicates an axis containing NaN or Inf coordinates.
	ErrNonFinite = errors.New("phase: axis contains non-finite coordinates")

	// ErrNotMonotonic indicates axis samples that are not strictly monotonic.
	ErrNotMonotonic = errors.New("phase: axis samples must be strictly monotonic")
)

// GridError wraps an axis validation failure with the axis name.
type GridError struct {
	Axis    string
	Wrapped error
}

func (e *GridError) Error() string {
	return fmt.Sprintf("%s axis: %s", e.Axis, e.Wrapped.Error())
}

func (e *GridError) Unwrap() error {
	return e.Wrapped
}

// EvalError reports a field callable that failed structurally at a node.
// Numeric singularities never produce an EvalError; they are recorded as
// NaN samples instead.
type EvalError struct {
	Row, Col int
	Q, P     float64
	Panic    any
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("field panicked at node (%d,%d) q=%.6g p=%.6g: %v",
		e.Row, e.Col, e.Q, e.P, e.Panic)
}
