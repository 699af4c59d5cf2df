// core/worldline/worldline.go
// ODEs for the interface membrane's own degrees of freedom: position,
// velocity, expansion, entropy, and proper time. The worldline samples
// the bulk fields at its (generally non-grid-aligned) position and is
// pushed by the matter energy flux plus a penalty force that pulls the
// dilaton-gradient jump across the two manifolds toward 8π·s.
//
// The penalty is a tunable-stiffness spring standing in for a hard
// Israel constraint; exact constraint satisfaction is not guaranteed.
// Junction residuals are surfaced by core/conservation instead.

package worldline

import (
	"math"

	"branesim-core/bulk"
)

const eightPi = 8 * math.Pi

// tempFloor guards the entropy law against division by a vanishing
// interface temperature.
const tempFloor = 1e-12

// Params are the interface coupling constants.
type Params struct {
	Lambda    float64 // flux-to-force coupling strength λ
	Kappa     float64 // entropy dissipation rate κ
	TSigma    float64 // interface temperature T_Σ
	MassEff   float64 // effective inertia of the membrane
	Stiffness float64 // junction penalty-spring stiffness
}

// DefaultParams returns the coupling constants the named scenarios use.
func DefaultParams() Params {
	return Params{
		Lambda:    0.5,
		Kappa:     0.1,
		TSigma:    1.0,
		MassEff:   1.0,
		Stiffness: 0.2,
	}
}

// State is the membrane worldline. Entropy is clamped non-negative on
// every update and proper time never decreases.
type State struct {
	Pos     float64 // x_b ∈ [0, L), periodic
	Vel     float64 // v_b, physical only for |v_b| < 1
	Theta   float64 // expansion scalar θ
	Entropy float64 // s ≥ 0
	Tau     float64 // proper time τ

	GridIndex int // cached nearest grid index for sampling
}

// Deriv is the time derivative of State.
type Deriv struct {
	Pos     float64
	Vel     float64
	Theta   float64
	Entropy float64
	Tau     float64
}

// Derivatives evaluates the worldline ODEs against stage-local bulk
// fields, so RK4 stages stay self-consistent.
func Derivatives(w State, phys, shadow bulk.State, g bulk.Grid, p Params) Deriv {
	flux := bulk.EnergyFluxAt(phys, g, w.Pos)
	jump := bulk.SampleGradient(phys.X, g, w.Pos) - bulk.SampleGradient(shadow.X, g, w.Pos)

	fFlux := p.Lambda * flux
	fJunction := -p.Stiffness * (jump - eightPi*w.Entropy)

	return Deriv{
		Pos:     w.Vel,
		Vel:     (fFlux + fJunction) / p.MassEff,
		Theta:   w.Vel * bulk.SampleGradient(phys.Rho, g, w.Pos),
		Entropy: EntropyRate(flux, w.Entropy, p),
		Tau:     ProperTimeRate(w.Vel, bulk.SampleLinear(phys.Rho, g, w.Pos)),
	}
}

// EntropyRate is ṡ = max(0, (Φ_in − κ·s)/T_Σ). The dissipation term
// κ·s can slow growth to a halt but never drives s below its current
// value; the state clamp in Normalize keeps s ≥ 0 against rounding.
func EntropyRate(flux float64, entropy float64, p Params) float64 {
	if p.TSigma < tempFloor {
		return 0
	}
	return math.Max(0, (flux-p.Kappa*entropy)/p.TSigma)
}

// RawEntropyRate is the unclamped constitutive rate. The conservation
// monitor inspects it for second-law bookkeeping; evolution always
// uses the clamped EntropyRate.
func RawEntropyRate(flux float64, entropy float64, p Params) float64 {
	if p.TSigma < tempFloor {
		return 0
	}
	return (flux - p.Kappa*entropy) / p.TSigma
}

// ProperTimeRate is τ̇ = e^ρ·√(1−v²), domain-guarded: a transient
// |v| ≥ 1 from an unstable step yields a zero rate, not a NaN.
func ProperTimeRate(vel, rho float64) float64 {
	return math.Exp(rho) * math.Sqrt(math.Max(0, 1-vel*vel))
}

// AddScaled returns w + c·d (stage arithmetic; no clamping here so
// intermediate RK4 stages stay linear).
func (w State) AddScaled(d Deriv, c float64) State {
	return State{
		Pos:       w.Pos + c*d.Pos,
		Vel:       w.Vel + c*d.Vel,
		Theta:     w.Theta + c*d.Theta,
		Entropy:   w.Entropy + c*d.Entropy,
		Tau:       w.Tau + c*d.Tau,
		GridIndex: w.GridIndex,
	}
}

// Normalize applies the state-level invariants after a completed step:
// position wrapped into the periodic domain, entropy clamped at zero,
// and the cached sampling index refreshed.
func (w State) Normalize(g bulk.Grid) State {
	w.Pos = g.Wrap(w.Pos)
	w.Entropy = math.Max(0, w.Entropy)
	w.GridIndex = g.NearestIndex(w.Pos)
	return w
}

// Valid reports whether all components are finite.
func (w State) Valid() bool {
	for _, v := range []float64{w.Pos, w.Vel, w.Theta, w.Entropy, w.Tau} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
