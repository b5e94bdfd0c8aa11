package fields

import (
	"fmt"
	"sort"

	"github.com/san-kum/phaseflow/internal/phase"
)

// System is a named vector field with tunable parameters and an energy
// function for diagnostics.
type System interface {
	phase.Field
	Energy(q, p float64) float64
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Registry maps field names to constructors.
type Registry struct {
	systems map[string]func() System
}

func NewRegistry() *Registry {
	r := &Registry{systems: make(map[string]func() System)}

	r.systems["harmonic"] = func() System { return NewHarmonic() }
	r.systems["pendulum"] = func() System { return NewPendulum() }
	r.systems["duffing"] = func() System { return NewDuffing() }
	r.systems["shear"] = func() System { return NewShear() }
	r.systems["inverse"] = func() System { return NewInverse() }

	return r
}

// Get constructs the named system with optional parameter overrides.
func (r *Registry) Get(name string, params map[string]float64) (System, error) {
	fn, ok := r.systems[name]
	if !ok {
		return nil, fmt.Errorf("unknown field: %s", name)
	}
	sys := fn()
	for k, v := range params {
		if err := sys.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	return sys, nil
}

// List returns the registered field names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.systems))
	for name := range r.systems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
