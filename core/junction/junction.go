// core/junction/junction.go
// Israel-type matching across the membrane: the jump in extrinsic
// curvature must equal the interface's own surface stress,
//
//	K_{ab} − K h_{ab} = 8π S_{ab}        (physical side)
//	K̃_{ab} − K̃ h_{ab} = −8π S_{ab}      (shadow side, sign flipped)
//
// A failed match is a reportable physical inconsistency, never an
// error: coercive scenarios are allowed to violate it as their normal
// operating mode.

package junction

import (
	"math"

	"branesim-core/tensor"
)

const eightPi = 8 * math.Pi

// VerificationResult is a derived snapshot of one matching check.
type VerificationResult struct {
	Jump      tensor.Matrix // K_{ab} − K h_{ab} − (±8π) S_{ab}
	Trace     float64       // jump traced with h⁻¹
	Residual  float64       // max |component| of Jump
	Satisfied bool
}

// Verify checks K_{ab} − K h_{ab} = 8π S_{ab} component-wise within
// tol. It returns false (never an error) when h cannot be inverted:
// a degenerate induced metric cannot satisfy any junction condition.
func Verify(k, s, h tensor.Matrix, tol float64) bool {
	res, ok := residual(k, s, h, 1)
	return ok && res.Residual <= tol
}

// SurfaceStressFromJunction inverts the matching relation to solve for
// the surface stress that satisfies it exactly:
// S_{ab} = (K_{ab} − K h_{ab}) / 8π.
// Used when the membrane is treated as a boundary condition rather
// than dynamically driven.
func SurfaceStressFromJunction(k, h tensor.Matrix) (tensor.Matrix, error) {
	hinv, err := h.Inverse()
	if err != nil {
		return tensor.Matrix{}, err
	}
	trace := tensor.Contract(hinv, k)
	return k.Sub(h.Scale(trace)).Scale(1 / eightPi), nil
}

// JumpConditions evaluates both sides of the match. The shadow side
// carries the opposite sign on the stress term.
func JumpConditions(kPhys, kShadow, s, h tensor.Matrix, tol float64) (phys, shadow VerificationResult, bothSatisfied bool) {
	var okP, okS bool
	phys, okP = residual(kPhys, s, h, 1)
	shadow, okS = residual(kShadow, s, h, -1)
	phys.Satisfied = okP && phys.Residual <= tol
	shadow.Satisfied = okS && shadow.Residual <= tol
	return phys, shadow, phys.Satisfied && shadow.Satisfied
}

func residual(k, s, h tensor.Matrix, sign float64) (VerificationResult, bool) {
	hinv, err := h.Inverse()
	if err != nil {
		return VerificationResult{}, false
	}
	trace := tensor.Contract(hinv, k)
	jump := k.Sub(h.Scale(trace)).Sub(s.Scale(sign * eightPi))
	maxAbs := 0.0
	for a := 0; a < jump.Dim; a++ {
		for b := 0; b < jump.Dim; b++ {
			if v := math.Abs(jump.At(a, b)); v > maxAbs {
				maxAbs = v
			}
		}
	}
	return VerificationResult{
		Jump:     jump,
		Trace:    tensor.Contract(hinv, jump),
		Residual: maxAbs,
	}, true
}

// ProjectStress pulls an ambient stress-energy tensor back onto the
// membrane: S_{ab} = T_{μν} t_a^μ t_b^ν.
func ProjectStress(t tensor.Matrix, tangents [][]float64) tensor.Matrix {
	out := tensor.NewMatrix(len(tangents))
	for a, ta := range tangents {
		for b, tb := range tangents {
			out.Set(a, b, tensor.Dot(t, ta, tb))
		}
	}
	return out
}

// NormalStress is the ambient stress seen head-on by the membrane:
// T_{μν} n^μ n^ν.
func NormalStress(t tensor.Matrix, normal []float64) float64 {
	return tensor.Dot(t, normal, normal)
}

// StressDifference is the physical-minus-shadow energy density driving
// the Raychaudhuri-type expansion of the interface.
func StressDifference(physDensity, shadowDensity float64) float64 {
	return physDensity - shadowDensity
}
