// core/bulk/equations.go
// Right-hand sides of the coupled wave equations, centered second
// differences on the periodic grid:
//
//	∂_t²ρ = ∂_x²ρ + ½e^{2ρ}          lapse, self-sourced
//	∂_t²X = ∂_x²X + 8π·T₀₀^ψ         dilaton, sourced by matter
//	∂_t²ψ = ∂_x²ψ                    free massless matter
//
// The ½e^{2ρ} source keeps 1+1D gravity dynamical (vacuum Einstein
// gravity in two dimensions is topological and would be frozen). It
// also means vacuum initial data runs away in finite time: for
// ρ = ρ̇ = 0 the uniform mode blows up near t ≈ 2.2, so scenario
// durations stay well inside that horizon.

package bulk

import "math"

const eightPi = 8 * math.Pi

// Laplacian computes the centered second difference of u at i,
// wrapping periodically.
func Laplacian(u []float64, i int, dx float64) float64 {
	n := len(u)
	prev := u[(i-1+n)%n]
	next := u[(i+1)%n]
	return (next - 2*u[i] + prev) / (dx * dx)
}

// Gradient computes the centered first difference of u at i,
// wrapping periodically.
func Gradient(u []float64, i int, dx float64) float64 {
	n := len(u)
	return (u[(i+1)%n] - u[(i-1+n)%n]) / (2 * dx)
}

// MatterT00 is the matter stress-energy density at grid point i:
// T₀₀^ψ = ½(ψ̇² + ψ_x²).
func MatterT00(s State, g Grid, i int) float64 {
	px := Gradient(s.Psi, i, g.Dx)
	return 0.5 * (s.PsiDot[i]*s.PsiDot[i] + px*px)
}

// Derivatives evaluates the wave-equation right-hand sides for one
// manifold. The result aliases nothing in s.
func Derivatives(s State, g Grid) Deriv {
	n := g.N
	d := Deriv{
		Rho:    make([]float64, n),
		RhoDot: make([]float64, n),
		X:      make([]float64, n),
		XDot:   make([]float64, n),
		Psi:    make([]float64, n),
		PsiDot: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		d.Rho[i] = s.RhoDot[i]
		d.X[i] = s.XDot[i]
		d.Psi[i] = s.PsiDot[i]

		d.RhoDot[i] = Laplacian(s.Rho, i, g.Dx) + 0.5*math.Exp(2*s.Rho[i])
		d.XDot[i] = Laplacian(s.X, i, g.Dx) + eightPi*MatterT00(s, g, i)
		d.PsiDot[i] = Laplacian(s.Psi, i, g.Dx)
	}
	return d
}

// SampleLinear interpolates u at an arbitrary coordinate between the
// two bracketing grid points (periodic).
func SampleLinear(u []float64, g Grid, x float64) float64 {
	xw := g.Wrap(x)
	f := xw / g.Dx
	i0 := int(f)
	if i0 >= g.N {
		i0 = 0
	}
	frac := f - float64(i0)
	i1 := (i0 + 1) % g.N
	return u[i0]*(1-frac) + u[i1]*frac
}

// SampleGradient interpolates the centered gradient of u at x.
func SampleGradient(u []float64, g Grid, x float64) float64 {
	xw := g.Wrap(x)
	f := xw / g.Dx
	i0 := int(f)
	if i0 >= g.N {
		i0 = 0
	}
	frac := f - float64(i0)
	g0 := Gradient(u, i0, g.Dx)
	g1 := Gradient(u, (i0+1)%g.N, g.Dx)
	return g0*(1-frac) + g1*frac
}

// EnergyFluxAt is the matter energy flux Φ = ψ̇·ψ_x sampled at the
// (generally non-grid-aligned) interface position.
func EnergyFluxAt(s State, g Grid, x float64) float64 {
	return SampleLinear(s.PsiDot, g, x) * SampleGradient(s.Psi, g, x)
}

// FieldEnergy is the discrete energy of one manifold:
//
//	Σ dx [ ½ρ̇² + ½(Δρ/dx)² − ¼e^{2ρ} + ½Ẋ² + ½(ΔX/dx)² + ½ψ̇² + ½(Δψ/dx)² ]
//
// Gradient terms use forward differences so the sum is the exact
// Hamiltonian of the semi-discrete system (the centered Laplacian is
// its gradient), and the lapse potential −¼e^{2ρ} pairs with the
// ½e^{2ρ} source. Time-stepping error is then the only drift source
// for matter-free states.
func FieldEnergy(s State, g Grid) float64 {
	e := 0.0
	n := g.N
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		drho := (s.Rho[j] - s.Rho[i]) / g.Dx
		dx := (s.X[j] - s.X[i]) / g.Dx
		dpsi := (s.Psi[j] - s.Psi[i]) / g.Dx
		e += 0.5*(s.RhoDot[i]*s.RhoDot[i]+drho*drho) - 0.25*math.Exp(2*s.Rho[i])
		e += 0.5 * (s.XDot[i]*s.XDot[i] + dx*dx)
		e += 0.5 * (s.PsiDot[i]*s.PsiDot[i] + dpsi*dpsi)
	}
	return e * g.Dx
}
