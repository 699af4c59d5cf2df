// core/bulk/fields.go
// Field state for one conformal-gauge dilaton-gravity manifold:
// lapse/conformal factor ρ, dilaton X, matter ψ, each with its time
// derivative, sampled on a periodic 1-D grid.

package bulk

import "math"

// State holds one manifold's fields. All slices have identical length
// (the grid's N); nothing mutates a State outside of a time step —
// stepping produces fresh values.
type State struct {
	Rho    []float64 // lapse/conformal factor ρ
	RhoDot []float64
	X      []float64 // dilaton
	XDot   []float64
	Psi    []float64 // matter scalar
	PsiDot []float64
}

// NewState returns a zeroed state sized for g.
func NewState(g Grid) State {
	return State{
		Rho:    make([]float64, g.N),
		RhoDot: make([]float64, g.N),
		X:      make([]float64, g.N),
		XDot:   make([]float64, g.N),
		Psi:    make([]float64, g.N),
		PsiDot: make([]float64, g.N),
	}
}

// Clone deep-copies the state.
func (s State) Clone() State {
	c := State{
		Rho:    make([]float64, len(s.Rho)),
		RhoDot: make([]float64, len(s.RhoDot)),
		X:      make([]float64, len(s.X)),
		XDot:   make([]float64, len(s.XDot)),
		Psi:    make([]float64, len(s.Psi)),
		PsiDot: make([]float64, len(s.PsiDot)),
	}
	copy(c.Rho, s.Rho)
	copy(c.RhoDot, s.RhoDot)
	copy(c.X, s.X)
	copy(c.XDot, s.XDot)
	copy(c.Psi, s.Psi)
	copy(c.PsiDot, s.PsiDot)
	return c
}

// AddScaled returns s + c·d as a new state (RK4 stage arithmetic).
func (s State) AddScaled(d Deriv, c float64) State {
	out := s.Clone()
	for i := range out.Rho {
		out.Rho[i] += c * d.Rho[i]
		out.RhoDot[i] += c * d.RhoDot[i]
		out.X[i] += c * d.X[i]
		out.XDot[i] += c * d.XDot[i]
		out.Psi[i] += c * d.Psi[i]
		out.PsiDot[i] += c * d.PsiDot[i]
	}
	return out
}

// Valid reports whether every component is finite.
func (s State) Valid() bool {
	for _, f := range [][]float64{s.Rho, s.RhoDot, s.X, s.XDot, s.Psi, s.PsiDot} {
		for _, v := range f {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Deriv is the time derivative of a State, shaped identically.
type Deriv struct {
	Rho    []float64
	RhoDot []float64
	X      []float64
	XDot   []float64
	Psi    []float64
	PsiDot []float64
}
