package fields

import (
	"math"
	"testing"
)

// derivePartials approximates (dH/dq, dH/dp) by central differences.
func derivePartials(sys System, q, p float64) (dq, dp float64) {
	const h = 1e-6
	dq = (sys.Energy(q+h, p) - sys.Energy(q-h, p)) / (2 * h)
	dp = (sys.Energy(q, p+h) - sys.Energy(q, p-h)) / (2 * h)
	return dq, dp
}

// TestHamiltonsEquations checks qdot = dH/dp and pdot = -dH/dq against the
// numeric gradient of each system's energy function.
func TestHamiltonsEquations(t *testing.T) {
	systems := map[string]System{
		"harmonic": NewHarmonic(),
		"pendulum": NewPendulum(),
		"duffing":  NewDuffing(),
	}
	points := []struct{ q, p float64 }{
		{0.5, 0.3}, {-1.2, 0.7}, {2.0, -1.5}, {0.1, 0.0},
	}

	for name, sys := range systems {
		t.Run(name, func(t *testing.T) {
			for _, pt := range points {
				qdot, pdot := sys.At(pt.q, pt.p, nil)
				dHdq, dHdp := derivePartials(sys, pt.q, pt.p)

				if math.Abs(qdot-dHdp) > 1e-4*(1+math.Abs(qdot)) {
					t.Errorf("(%v,%v): qdot = %v, dH/dp = %v", pt.q, pt.p, qdot, dHdp)
				}
				if math.Abs(pdot+dHdq) > 1e-4*(1+math.Abs(pdot)) {
					t.Errorf("(%v,%v): pdot = %v, -dH/dq = %v", pt.q, pt.p, pdot, -dHdq)
				}
			}
		})
	}
}

func TestHarmonic_FixedPointAtOrigin(t *testing.T) {
	h := NewHarmonic()
	qdot, pdot := h.At(0, 0, nil)
	if qdot != 0 || pdot != 0 {
		t.Errorf("At(0,0) = (%v,%v), want (0,0)", qdot, pdot)
	}
}

func TestPendulum_SeparatrixSaddles(t *testing.T) {
	pd := NewPendulum()
	// Saddle points sit at q = +/-pi, p = 0.
	qdot, pdot := pd.At(math.Pi, 0, nil)
	if qdot != 0 || math.Abs(pdot) > 1e-12 {
		t.Errorf("At(pi,0) = (%v,%v), want ~(0,0)", qdot, pdot)
	}
}

func TestInverse_SingularAxis(t *testing.T) {
	inv := NewInverse()
	qdot, _ := inv.At(0, 1, nil)
	if !math.IsInf(qdot, 1) {
		t.Errorf("At(0,1) qdot = %v, want +Inf", qdot)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	names := r.List()
	want := []string{"duffing", "harmonic", "inverse", "pendulum", "shear"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("List() = %v, want %v", names, want)
		}
	}

	if _, err := r.Get("lorenz", nil); err == nil {
		t.Error("Get(lorenz) should fail")
	}

	sys, err := r.Get("harmonic", map[string]float64{"k": 10, "m": 2})
	if err != nil {
		t.Fatal(err)
	}
	qdot, pdot := sys.At(1, 2, nil)
	if qdot != 1 || pdot != -10 {
		t.Errorf("overridden harmonic At(1,2) = (%v,%v), want (1,-10)", qdot, pdot)
	}

	if _, err := r.Get("harmonic", map[string]float64{"bogus": 1}); err == nil {
		t.Error("unknown parameter should fail")
	}
}

func TestSetParam_Unknown(t *testing.T) {
	systems := []System{NewHarmonic(), NewPendulum(), NewDuffing(), NewShear(), NewInverse()}
	for _, sys := range systems {
		if err := sys.SetParam("no_such_param", 1); err == nil {
			t.Errorf("%T: SetParam(no_such_param) should fail", sys)
		}
	}
}
