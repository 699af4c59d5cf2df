// core/membrane/membrane.go
// Kinematics and thermodynamics of the dissipative interface membrane:
// expansion, shear, surface stress, and the constitutive entropy law.
//
// Units are geometric (G = c = k_B = 1). The membrane's own dynamics
// (position/velocity ODEs) live in core/worldline; this package holds
// the frame-local quantities both sides agree on.

package membrane

import (
	"math"

	"branesim-core/tensor"
)

// TempFloor is the interface temperature below which entropy updates
// are suppressed instead of dividing by near-zero.
const TempFloor = 1e-12

// Coefficients collects the membrane's constitutive constants.
type Coefficients struct {
	Tension        float64 // surface tension σ
	BulkViscosity  float64 // ζ, resists expansion
	ShearViscosity float64 // η, resists shear
	Emissivity     float64 // grey-body factor for thermal radiation
}

// DefaultCoefficients returns the values used by the named scenarios.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		Tension:        0.1,
		BulkViscosity:  0.05,
		ShearViscosity: 0.02,
		Emissivity:     1.0,
	}
}

// ExpansionScalar computes θ = h^{ab} ∂_a u_b, the trace of the
// velocity gradient in the membrane frame. du holds ∂_a u_b.
func ExpansionScalar(hinv, du tensor.Matrix) float64 {
	return tensor.Contract(hinv, du)
}

// ShearRateTensor computes the trace-free symmetric part of the
// velocity gradient: σ_{ab} = ½(∂_a u_b + ∂_b u_a) − (θ/d) h_{ab}.
func ShearRateTensor(h, hinv, du tensor.Matrix) tensor.Matrix {
	d := float64(h.Dim)
	theta := ExpansionScalar(hinv, du)
	s := tensor.NewMatrix(h.Dim)
	for a := 0; a < h.Dim; a++ {
		for b := 0; b < h.Dim; b++ {
			sym := 0.5 * (du.At(a, b) + du.At(b, a))
			s.Set(a, b, sym-theta/d*h.At(a, b))
		}
	}
	return s
}

// SurfaceStressTensor combines tension and viscous response:
//
//	S_{ab} = −σ h_{ab} + ζ θ h_{ab} + 2η σ_{ab}
func SurfaceStressTensor(h tensor.Matrix, theta float64, shear tensor.Matrix, c Coefficients) tensor.Matrix {
	s := h.Scale(-c.Tension + c.BulkViscosity*theta)
	return s.Add(shear.Scale(2 * c.ShearViscosity))
}

// EntropyRate is the constitutive second-law update for the membrane:
// net energy flux minus viscous dissipation, divided by temperature.
// This term alone never decreases entropy; the rate is clamped at
// zero. Dissipation elsewhere (core/worldline) may slow growth but
// the state itself stays non-negative.
func EntropyRate(fluxIn, fluxOut, dissipation, temperature float64) float64 {
	if temperature < TempFloor {
		return 0
	}
	rate := (fluxIn - fluxOut - dissipation) / temperature
	return math.Max(0, rate)
}

// EnergyFluxFromStress projects ambient stress onto the membrane's
// flow and normal directions: Φ = S_{ab} u^a n^b.
func EnergyFluxFromStress(s tensor.Matrix, u, n []float64) float64 {
	return tensor.Dot(s, u, n)
}

// ThermalRadiation is the grey-body outflux ε·T⁴ per unit membrane
// area (Stefan–Boltzmann with the constant absorbed into ε).
func ThermalRadiation(temperature, area float64, c Coefficients) float64 {
	t := math.Max(0, temperature)
	return c.Emissivity * area * t * t * t * t
}

// ViscousDissipation is the entropy-law sink: ζθ² + 2η σ_{ab}σ^{ab}.
// Both terms are non-negative for admissible coefficients.
func ViscousDissipation(theta float64, shear, hinv tensor.Matrix, c Coefficients) float64 {
	s2 := 0.0
	n := shear.Dim
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for p := 0; p < n; p++ {
				for q := 0; q < n; q++ {
					s2 += hinv.At(a, p) * hinv.At(b, q) * shear.At(a, b) * shear.At(p, q)
				}
			}
		}
	}
	return c.BulkViscosity*theta*theta + 2*c.ShearViscosity*s2
}
