// core/integrate/rk4.go
// Classic 4-stage Runge–Kutta over the whole coupled system at once:
// both bulk manifolds and the interface worldline advance through the
// same stage points, and every stage re-samples the interface against
// the stage-local bulk fields rather than the initial state.
//
// No step raises internally; unbounded growth is the caller's to
// detect via State.Valid after stepping.

package integrate

import (
	"branesim-core/bulk"
	"branesim-core/worldline"
)

// State is the full coupled system: physical and shadow manifolds, the
// interface worldline, current time, last step size, and grid
// metadata. Immutable by convention — Step returns a fresh value.
type State struct {
	Grid   bulk.Grid
	Phys   bulk.State
	Shadow bulk.State
	Sigma  worldline.State // the membrane Σ
	Params worldline.Params

	T  float64
	Dt float64
}

// Deriv aggregates the derivatives of every evolving component.
type Deriv struct {
	Phys   bulk.Deriv
	Shadow bulk.Deriv
	Sigma  worldline.Deriv
}

// Derivatives evaluates all right-hand sides at s.
func Derivatives(s State) Deriv {
	return Deriv{
		Phys:   bulk.Derivatives(s.Phys, s.Grid),
		Shadow: bulk.Derivatives(s.Shadow, s.Grid),
		Sigma:  worldline.Derivatives(s.Sigma, s.Phys, s.Shadow, s.Grid, s.Params),
	}
}

func addScaled(s State, d Deriv, c float64) State {
	out := s
	out.Phys = s.Phys.AddScaled(d.Phys, c)
	out.Shadow = s.Shadow.AddScaled(d.Shadow, c)
	out.Sigma = s.Sigma.AddScaled(d.Sigma, c)
	return out
}

// Step advances the coupled state by one RK4 step of size dt:
// y_{n+1} = y_n + (dt/6)(k₁ + 2k₂ + 2k₃ + k₄). After combining, the
// worldline invariants (entropy ≥ 0, periodic position, cached index)
// are re-established.
func Step(s State, dt float64) State {
	k1 := Derivatives(s)
	k2 := Derivatives(addScaled(s, k1, dt/2))
	k3 := Derivatives(addScaled(s, k2, dt/2))
	k4 := Derivatives(addScaled(s, k3, dt))

	out := s
	out.Phys = combine(s.Phys, k1.Phys, k2.Phys, k3.Phys, k4.Phys, dt)
	out.Shadow = combine(s.Shadow, k1.Shadow, k2.Shadow, k3.Shadow, k4.Shadow, dt)
	out.Sigma = s.Sigma.
		AddScaled(k1.Sigma, dt/6).
		AddScaled(k2.Sigma, dt/3).
		AddScaled(k3.Sigma, dt/3).
		AddScaled(k4.Sigma, dt/6).
		Normalize(s.Grid)
	out.T = s.T + dt
	out.Dt = dt
	return out
}

func combine(y bulk.State, k1, k2, k3, k4 bulk.Deriv, dt float64) bulk.State {
	return y.
		AddScaled(k1, dt/6).
		AddScaled(k2, dt/3).
		AddScaled(k3, dt/3).
		AddScaled(k4, dt/6)
}

// Valid reports whether every component of the state is finite.
func (s State) Valid() bool {
	return s.Phys.Valid() && s.Shadow.Valid() && s.Sigma.Valid()
}

// StepPolicy supplies the step size for the next step. The core ships
// the fixed-step policy only; adaptive (event-driven) schemes plug in
// here without touching Step.
type StepPolicy interface {
	Next(s State) float64
}

// FixedStep is the constant-dt policy.
type FixedStep float64

// Next returns the fixed step size.
func (f FixedStep) Next(State) float64 { return float64(f) }
