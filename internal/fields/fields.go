package fields

import (
	"fmt"
	"math"
)

// Harmonic is the simple harmonic oscillator: H = p^2/2m + k q^2/2.
type Harmonic struct {
	M, K float64
}

func NewHarmonic() *Harmonic { return &Harmonic{M: 1.0, K: 1.0} }

func (h *Harmonic) At(q, p float64, _ []float64) (float64, float64) {
	return p / h.M, -h.K * q
}

func (h *Harmonic) Energy(q, p float64) float64 {
	return p*p/(2*h.M) + 0.5*h.K*q*q
}

func (h *Harmonic) GetParams() map[string]float64 {
	return map[string]float64{"m": h.M, "k": h.K}
}

func (h *Harmonic) SetParam(n string, v float64) error {
	switch n {
	case "m":
		h.M = v
	case "k":
		h.K = v
	default:
		return fmt.Errorf("harmonic: unknown parameter %q", n)
	}
	return nil
}

// Pendulum is the planar pendulum: H = p^2/(2 m l^2) - m g l cos q.
// Its phase portrait shows the separatrix between libration and rotation.
type Pendulum struct {
	M, L, G float64
}

func NewPendulum() *Pendulum { return &Pendulum{M: 1.0, L: 1.0, G: 9.81} }

func (pd *Pendulum) At(q, p float64, _ []float64) (float64, float64) {
	return p / (pd.M * pd.L * pd.L), -pd.M * pd.G * pd.L * math.Sin(q)
}

func (pd *Pendulum) Energy(q, p float64) float64 {
	return p*p/(2*pd.M*pd.L*pd.L) - pd.M*pd.G*pd.L*math.Cos(q)
}

func (pd *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{"m": pd.M, "l": pd.L, "g": pd.G}
}

func (pd *Pendulum) SetParam(n string, v float64) error {
	switch n {
	case "m":
		pd.M = v
	case "l":
		pd.L = v
	case "g":
		pd.G = v
	default:
		return fmt.Errorf("pendulum: unknown parameter %q", n)
	}
	return nil
}

// Duffing is the unforced, undamped double-well oscillator:
// H = p^2/2 + alpha q^2/2 + beta q^4/4. With alpha < 0 the portrait has two
// centers and a saddle at the origin.
type Duffing struct {
	Alpha, Beta float64
}

func NewDuffing() *Duffing { return &Duffing{Alpha: -1.0, Beta: 1.0} }

func (d *Duffing) At(q, p float64, _ []float64) (float64, float64) {
	return p, -d.Alpha*q - d.Beta*q*q*q
}

func (d *Duffing) Energy(q, p float64) float64 {
	return 0.5*p*p + 0.5*d.Alpha*q*q + 0.25*d.Beta*q*q*q*q
}

func (d *Duffing) GetParams() map[string]float64 {
	return map[string]float64{"alpha": d.Alpha, "beta": d.Beta}
}

func (d *Duffing) SetParam(n string, v float64) error {
	switch n {
	case "alpha":
		d.Alpha = v
	case "beta":
		d.Beta = v
	default:
		return fmt.Errorf("duffing: unknown parameter %q", n)
	}
	return nil
}

// Shear is the field (q p, -k): uniform downward momentum drift with a
// position flow that reverses sign across p = 0. Its layered closed
// contours make a good colormap demo.
type Shear struct {
	K float64
}

func NewShear() *Shear { return &Shear{K: 3.0} }

func (s *Shear) At(q, p float64, _ []float64) (float64, float64) {
	return q * p, -s.K
}

func (s *Shear) Energy(q, p float64) float64 {
	return 0.5*q*p*p + s.K*q
}

func (s *Shear) GetParams() map[string]float64 {
	return map[string]float64{"k": s.K}
}

func (s *Shear) SetParam(n string, v float64) error {
	if n != "k" {
		return fmt.Errorf("shear: unknown parameter %q", n)
	}
	s.K = v
	return nil
}

// Inverse is the field (1/q, p): singular along the q = 0 axis. It exists
// to exercise singularity handling end to end.
type Inverse struct{}

func NewInverse() *Inverse { return &Inverse{} }

func (*Inverse) At(q, p float64, _ []float64) (float64, float64) {
	return 1 / q, p
}

func (*Inverse) Energy(q, p float64) float64 {
	return 0.5*p*p + math.Log(math.Abs(q))
}

func (*Inverse) GetParams() map[string]float64 { return map[string]float64{} }

func (*Inverse) SetParam(n string, _ float64) error {
	return fmt.Errorf("inverse: unknown parameter %q", n)
}
