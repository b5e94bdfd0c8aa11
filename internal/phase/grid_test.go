package phase

import (
	"errors"
	"math"
	"testing"
)

func TestNewGrid_Shape(t *testing.T) {
	g, err := NewGrid([]float64{-1, 0, 1}, []float64{-2, 2})
	if err != nil {
		t.Fatalf("NewGrid returned error: %v", err)
	}

	if g.Rows() != 2 || g.Cols() != 3 {
		t.Errorf("shape = (%d,%d), want (2,3)", g.Rows(), g.Cols())
	}
	if g.Len() != 6 {
		t.Errorf("Len() = %d, want 6", g.Len())
	}

	q, p := g.At(0, 0)
	if q != -1 || p != -2 {
		t.Errorf("At(0,0) = (%v,%v), want (-1,-2)", q, p)
	}
	q, p = g.At(1, 2)
	if q != 1 || p != 2 {
		t.Errorf("At(1,2) = (%v,%v), want (1,2)", q, p)
	}
}

func TestNewGrid_Invalid(t *testing.T) {
	tests := []struct {
		name string
		q, p []float64
		want error
	}{
		{"single point q", []float64{1}, []float64{-1, 1}, ErrTooFewPoints},
		{"empty p", []float64{-1, 1}, nil, ErrTooFewPoints},
		{"NaN coordinate", []float64{-1, math.NaN(), 1}, []float64{-1, 1}, ErrNonFinite},
		{"Inf coordinate", []float64{-1, 1}, []float64{math.Inf(1), 1}, ErrNonFinite},
		{"duplicate", []float64{-1, 0, 0, 1}, []float64{-1, 1}, ErrNotMonotonic},
		{"direction reversal", []float64{-1, 1}, []float64{0, 2, 1}, ErrNotMonotonic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.q, tt.p)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			var ge *GridError
			if !errors.As(err, &ge) {
				t.Errorf("error is not a *GridError: %v", err)
			}
		})
	}
}

func TestNewGrid_DescendingAxis(t *testing.T) {
	g, err := NewGrid([]float64{3, 2, 1}, []float64{-1, 1})
	if err != nil {
		t.Fatalf("descending axis rejected: %v", err)
	}
	if q, _ := g.At(0, 0); q != 3 {
		t.Errorf("At(0,0) q = %v, want 3", q)
	}
}

func TestNewGrid_CopiesInput(t *testing.T) {
	q := []float64{-1, 0, 1}
	g, err := NewGrid(q, []float64{-1, 1})
	if err != nil {
		t.Fatal(err)
	}
	q[0] = 99
	if got, _ := g.At(0, 0); got != -1 {
		t.Errorf("grid aliases caller slice: At(0,0) q = %v", got)
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(-5, 5, 21)
	if len(got) != 21 {
		t.Fatalf("len = %d, want 21", len(got))
	}
	if got[0] != -5 || got[20] != 5 {
		t.Errorf("endpoints = (%v,%v), want (-5,5)", got[0], got[20])
	}
	if math.Abs(got[10]) > 1e-12 {
		t.Errorf("midpoint = %v, want 0", got[10])
	}
}

func TestGrid_Steps(t *testing.T) {
	g, err := NewGrid([]float64{0, 1, 3}, []float64{0, 10})
	if err != nil {
		t.Fatal(err)
	}
	if g.StepQ() != 1 {
		t.Errorf("StepQ = %v, want 1", g.StepQ())
	}
	if g.StepP() != 10 {
		t.Errorf("StepP = %v, want 10", g.StepP())
	}
}

func TestGrid_Index(t *testing.T) {
	g, _ := NewGrid([]float64{-1, 0, 1}, []float64{-2, 2})
	if got := g.Index(1, 2); got != 5 {
		t.Errorf("Index(1,2) = %d, want 5", got)
	}
}
