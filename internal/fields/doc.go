// Package fields provides built-in one degree of freedom Hamiltonian
// systems and a name registry for the CLI.
//
// Each system implements [phase.Field] plus parameter access in the
// GetParams/SetParam style, and exposes its Hamiltonian through Energy.
package fields
