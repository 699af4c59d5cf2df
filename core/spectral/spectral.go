// core/spectral/spectral.go
// Signature diagnostics over completed trajectories: the spectral
// acceleration of the dilaton at the membrane (a coercion proxy) and
// the coarse orbit classification of a run's summary statistics.

package spectral

import (
	"math"

	"branesim-core/bulk"
	"branesim-core/integrate"
)

// OrbitClass is the qualitative label of a run.
type OrbitClass string

const (
	OrbitComet       OrbitClass = "comet"
	OrbitPlanet      OrbitClass = "planet"
	OrbitSpikyPlanet OrbitClass = "spiky_planet"
	OrbitDrift       OrbitClass = "drift"
)

// Acceleration computes the finite-difference second time derivative
// of the dilaton sampled at the membrane, with a centered stencil of
// half-width window. Entries without a full stencil are omitted, so
// the result has len(states) − 2·window samples (empty when the
// trajectory is too short).
func Acceleration(states []integrate.State, window int) []float64 {
	if window < 1 {
		window = 1
	}
	if len(states) < 2*window+1 {
		return nil
	}

	// Dilaton at the membrane, per snapshot (each state samples
	// against its own interface position).
	f := make([]float64, len(states))
	for i, s := range states {
		f[i] = bulk.SampleLinear(s.Phys.X, s.Grid, s.Sigma.Pos)
	}

	out := make([]float64, 0, len(states)-2*window)
	for i := window; i < len(states)-window; i++ {
		dt := states[i].Dt * float64(window)
		if dt <= 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (f[i+window]-2*f[i]+f[i-window])/(dt*dt))
	}
	return out
}

// Peak returns the maximum absolute value in a series (0 for empty).
func Peak(series []float64) float64 {
	p := 0.0
	for _, v := range series {
		if a := math.Abs(v); a > p {
			p = a
		}
	}
	return p
}

// Classify maps a run's total energy and peak spectral acceleration to
// an orbit class. Tie-breaking is by threshold comparison: both
// statistics under low is drift, energy at or above high dominates as
// spiky_planet, a high acceleration alone is a comet transient, and
// everything between is a planet.
func Classify(energy, peakAccel, low, high float64) OrbitClass {
	switch {
	case energy >= high:
		return OrbitSpikyPlanet
	case energy < low && peakAccel < low:
		return OrbitDrift
	case peakAccel >= high:
		return OrbitComet
	default:
		return OrbitPlanet
	}
}
