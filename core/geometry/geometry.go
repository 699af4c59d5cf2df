// core/geometry/geometry.go
// Differential-geometry operators on top of core/tensor: Christoffel
// symbols, curvature tensors, induced metrics, and causal
// classification of vectors.
//
// Conventions: metric signature (−,+,…,+); Γ^λ_{μν} symmetric in the
// lower pair; coordinate-derivative tensors are indexed with the
// derivative index first (dg[σ][μ][ν] = ∂_σ g_{μν}).

package geometry

import (
	"fmt"

	"branesim-core/tensor"
)

// NullBand is the |norm²| tolerance inside which a vector counts as
// null; it absorbs floating-point noise around the light cone.
const NullBand = 1e-12

// CausalClass labels a vector's position relative to the light cone.
type CausalClass string

const (
	Timelike  CausalClass = "timelike"
	Spacelike CausalClass = "spacelike"
	Null      CausalClass = "null"
)

// Christoffel computes Γ^λ_{μν} = ½ g^{λσ}(∂_μ g_{νσ} + ∂_ν g_{μσ} − ∂_σ g_{μν}).
// dg holds the coordinate derivatives of the metric, derivative index
// first. Fails if the metric cannot be inverted.
func Christoffel(g tensor.Matrix, dg tensor.Tensor3) (tensor.Tensor3, error) {
	if dg.Dim != g.Dim {
		return tensor.Tensor3{}, fmt.Errorf("geometry: metric dim %d vs derivative dim %d", g.Dim, dg.Dim)
	}
	ginv, err := g.Inverse()
	if err != nil {
		return tensor.Tensor3{}, fmt.Errorf("geometry: christoffel: %w", err)
	}
	n := g.Dim
	gamma := tensor.NewTensor3(n)
	for lam := 0; lam < n; lam++ {
		for mu := 0; mu < n; mu++ {
			for nu := 0; nu < n; nu++ {
				s := 0.0
				for sig := 0; sig < n; sig++ {
					s += ginv.At(lam, sig) *
						(dg.At(mu, nu, sig) + dg.At(nu, mu, sig) - dg.At(sig, mu, nu))
				}
				gamma.Set(lam, mu, nu, 0.5*s)
			}
		}
	}
	return gamma, nil
}

// Ricci computes R_{μν} = ∂_λ Γ^λ_{μν} − ∂_ν Γ^λ_{μλ}
// + Γ^λ_{λσ} Γ^σ_{μν} − Γ^λ_{νσ} Γ^σ_{μλ}.
// dgamma holds ∂_σ Γ^λ_{μν} with the derivative index first.
func Ricci(gamma tensor.Tensor3, dgamma tensor.Tensor4) (tensor.Matrix, error) {
	if dgamma.Dim != gamma.Dim {
		return tensor.Matrix{}, fmt.Errorf("geometry: christoffel dim %d vs derivative dim %d", gamma.Dim, dgamma.Dim)
	}
	n := gamma.Dim
	r := tensor.NewMatrix(n)
	for mu := 0; mu < n; mu++ {
		for nu := 0; nu < n; nu++ {
			v := 0.0
			for lam := 0; lam < n; lam++ {
				v += dgamma.At(lam, lam, mu, nu) - dgamma.At(nu, lam, mu, lam)
				for sig := 0; sig < n; sig++ {
					v += gamma.At(lam, lam, sig)*gamma.At(sig, mu, nu) -
						gamma.At(lam, nu, sig)*gamma.At(sig, mu, lam)
				}
			}
			r.Set(mu, nu, v)
		}
	}
	return r, nil
}

// ScalarCurvature contracts the Ricci tensor: R = g^{μν} R_{μν}.
func ScalarCurvature(ginv, ricci tensor.Matrix) float64 {
	return tensor.Contract(ginv, ricci)
}

// Einstein computes G_{μν} = R_{μν} − ½ g_{μν} R.
func Einstein(g, ricci tensor.Matrix, scalar float64) tensor.Matrix {
	return ricci.Sub(g.Scale(0.5 * scalar))
}

// ExtrinsicCurvature approximates K_{ab} by projecting the symmetrized
// coordinate gradient of the unit normal onto the tangent basis:
//
//	K_{ab} ≈ t_a^μ t_b^ν · ½(∂_μ n_ν + ∂_ν n_μ)
//
// dn holds ∂_μ n_ν (derivative index first). This is the
// constant-normal / flat-ambient approximation: it drops the Γ·n
// connection terms, so it is not an exact numerical-relativity K.
// Acceptable for the thin-membrane bookkeeping here; verify against
// the conservation audit rather than trusting it as exact.
func ExtrinsicCurvature(dn tensor.Matrix, tangents [][]float64) tensor.Matrix {
	k := tensor.NewMatrix(len(tangents))
	for a, ta := range tangents {
		for b, tb := range tangents {
			s := 0.0
			for mu := 0; mu < dn.Dim; mu++ {
				for nu := 0; nu < dn.Dim; nu++ {
					s += ta[mu] * tb[nu] * 0.5 * (dn.At(mu, nu) + dn.At(nu, mu))
				}
			}
			k.Set(a, b, s)
		}
	}
	return k
}

// TraceK contracts K_{ab} with the inverse induced metric.
func TraceK(hinv, k tensor.Matrix) float64 {
	return tensor.Contract(hinv, k)
}

// KSquared computes K_{ab} K^{ab} = h^{ac} h^{bd} K_{ab} K_{cd}.
func KSquared(hinv, k tensor.Matrix) float64 {
	n := k.Dim
	s := 0.0
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for c := 0; c < n; c++ {
				for d := 0; d < n; d++ {
					s += hinv.At(a, c) * hinv.At(b, d) * k.At(a, b) * k.At(c, d)
				}
			}
		}
	}
	return s
}

// InducedMetric projects the ambient metric onto a tangent basis:
// h_{ab} = g_{μν} t_a^μ t_b^ν.
func InducedMetric(g tensor.Matrix, tangents [][]float64) (tensor.Matrix, error) {
	for a, ta := range tangents {
		if len(ta) != g.Dim {
			return tensor.Matrix{}, fmt.Errorf("geometry: tangent %d has dim %d, ambient is %d", a, len(ta), g.Dim)
		}
	}
	h := tensor.NewMatrix(len(tangents))
	for a, ta := range tangents {
		for b, tb := range tangents {
			h.Set(a, b, tensor.Dot(g, ta, tb))
		}
	}
	return h, nil
}

// VectorType classifies v by its squared norm under g. Norms inside
// NullBand are treated as null so light-cone vectors are not
// misclassified by rounding.
func VectorType(g tensor.Matrix, v []float64) CausalClass {
	n2 := tensor.Dot(g, v, v)
	switch {
	case n2 < -NullBand:
		return Timelike
	case n2 > NullBand:
		return Spacelike
	default:
		return Null
	}
}
