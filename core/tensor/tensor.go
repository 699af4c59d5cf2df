// core/tensor/tensor.go
// Dense small-matrix algebra for metric and stress tensors.
// All tensors are fixed-shape and dimension-checked at construction;
// components are stored flat (row-major) to avoid nested-slice aliasing.
//
// This package has no geometry/physics deps; everything above imports it.

package tensor

import "fmt"

// PivotFloor is the magnitude below which a pivot is treated as zero.
// A singular metric signals an invalid physical state, so Inverse must
// fail loudly rather than return garbage.
const PivotFloor = 1e-12

// SingularMatrixError reports a failed inversion: the pivot found for a
// column fell below PivotFloor.
type SingularMatrixError struct {
	Col   int
	Pivot float64
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("tensor: singular matrix (pivot %.3e at column %d)", e.Pivot, e.Col)
}

// Matrix is a rank-2 tensor with both indices down unless stated
// otherwise by the operation that produced it.
type Matrix struct {
	Dim  int
	data []float64
}

// NewMatrix returns a zero dim×dim matrix. Panics on dim < 1: a
// malformed shape is a programming error, not a runtime condition.
func NewMatrix(dim int) Matrix {
	if dim < 1 {
		panic(fmt.Sprintf("tensor: invalid matrix dim %d", dim))
	}
	return Matrix{Dim: dim, data: make([]float64, dim*dim)}
}

// Identity returns the dim×dim identity.
func Identity(dim int) Matrix {
	m := NewMatrix(dim)
	for i := 0; i < dim; i++ {
		m.data[i*dim+i] = 1
	}
	return m
}

// Diagonal builds a matrix from its diagonal entries.
func Diagonal(d ...float64) Matrix {
	m := NewMatrix(len(d))
	for i, v := range d {
		m.data[i*m.Dim+i] = v
	}
	return m
}

// FromRows builds a matrix from a square nested slice.
func FromRows(rows [][]float64) (Matrix, error) {
	n := len(rows)
	if n == 0 {
		return Matrix{}, fmt.Errorf("tensor: empty row set")
	}
	m := NewMatrix(n)
	for i, r := range rows {
		if len(r) != n {
			return Matrix{}, fmt.Errorf("tensor: row %d has %d entries, want %d", i, len(r), n)
		}
		copy(m.data[i*n:(i+1)*n], r)
	}
	return m, nil
}

func (m Matrix) idx(i, j int) int {
	if i < 0 || i >= m.Dim || j < 0 || j >= m.Dim {
		panic(fmt.Sprintf("tensor: index (%d,%d) out of range for dim %d", i, j, m.Dim))
	}
	return i*m.Dim + j
}

// At returns component (i,j).
func (m Matrix) At(i, j int) float64 { return m.data[m.idx(i, j)] }

// Set assigns component (i,j).
func (m *Matrix) Set(i, j int, v float64) { m.data[m.idx(i, j)] = v }

// Clone returns an independent copy.
func (m Matrix) Clone() Matrix {
	c := Matrix{Dim: m.Dim, data: make([]float64, len(m.data))}
	copy(c.data, m.data)
	return c
}

// Add returns m + o.
func (m Matrix) Add(o Matrix) Matrix {
	mustMatch(m.Dim, o.Dim)
	c := NewMatrix(m.Dim)
	for i := range m.data {
		c.data[i] = m.data[i] + o.data[i]
	}
	return c
}

// Sub returns m − o.
func (m Matrix) Sub(o Matrix) Matrix {
	mustMatch(m.Dim, o.Dim)
	c := NewMatrix(m.Dim)
	for i := range m.data {
		c.data[i] = m.data[i] - o.data[i]
	}
	return c
}

// Scale returns f·m.
func (m Matrix) Scale(f float64) Matrix {
	c := NewMatrix(m.Dim)
	for i := range m.data {
		c.data[i] = f * m.data[i]
	}
	return c
}

// Mul returns the matrix product m·o.
func (m Matrix) Mul(o Matrix) Matrix {
	mustMatch(m.Dim, o.Dim)
	n := m.Dim
	c := NewMatrix(n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			a := m.data[i*n+k]
			if a == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				c.data[i*n+j] += a * o.data[k*n+j]
			}
		}
	}
	return c
}

func mustMatch(a, b int) {
	if a != b {
		panic(fmt.Sprintf("tensor: dimension mismatch %d vs %d", a, b))
	}
}

// Determinant computes det(m) by LU decomposition with partial pivoting.
// Returns the signed value, and 0 for a singular matrix; it is a
// diagnostic, never used for inversion.
func (m Matrix) Determinant() float64 {
	n := m.Dim
	lu := m.Clone()
	det := 1.0
	for col := 0; col < n; col++ {
		p := col
		for r := col + 1; r < n; r++ {
			if abs(lu.data[r*n+col]) > abs(lu.data[p*n+col]) {
				p = r
			}
		}
		pivot := lu.data[p*n+col]
		if abs(pivot) < PivotFloor {
			return 0
		}
		if p != col {
			swapRows(lu.data, n, p, col)
			det = -det
		}
		det *= lu.data[col*n+col]
		for r := col + 1; r < n; r++ {
			f := lu.data[r*n+col] / lu.data[col*n+col]
			for c := col; c < n; c++ {
				lu.data[r*n+c] -= f * lu.data[col*n+c]
			}
		}
	}
	return det
}

// Inverse computes m⁻¹ by Gauss–Jordan elimination with partial
// pivoting. A pivot below PivotFloor yields a *SingularMatrixError;
// callers must propagate it, not substitute a default.
func (m Matrix) Inverse() (Matrix, error) {
	n := m.Dim
	a := m.Clone()
	inv := Identity(n)
	for col := 0; col < n; col++ {
		p := col
		for r := col + 1; r < n; r++ {
			if abs(a.data[r*n+col]) > abs(a.data[p*n+col]) {
				p = r
			}
		}
		pivot := a.data[p*n+col]
		if abs(pivot) < PivotFloor {
			return Matrix{}, &SingularMatrixError{Col: col, Pivot: pivot}
		}
		if p != col {
			swapRows(a.data, n, p, col)
			swapRows(inv.data, n, p, col)
		}
		f := 1 / a.data[col*n+col]
		for c := 0; c < n; c++ {
			a.data[col*n+c] *= f
			inv.data[col*n+c] *= f
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			g := a.data[r*n+col]
			if g == 0 {
				continue
			}
			for c := 0; c < n; c++ {
				a.data[r*n+c] -= g * a.data[col*n+c]
				inv.data[r*n+c] -= g * inv.data[col*n+c]
			}
		}
	}
	return inv, nil
}

func swapRows(d []float64, n, a, b int) {
	for c := 0; c < n; c++ {
		d[a*n+c], d[b*n+c] = d[b*n+c], d[a*n+c]
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// RaiseVector raises the index of a covector: v^μ = g^{μν} v_ν.
// ginv must be the metric inverse.
func RaiseVector(ginv Matrix, v []float64) []float64 {
	mustMatch(ginv.Dim, len(v))
	out := make([]float64, len(v))
	for i := 0; i < ginv.Dim; i++ {
		s := 0.0
		for j := 0; j < ginv.Dim; j++ {
			s += ginv.At(i, j) * v[j]
		}
		out[i] = s
	}
	return out
}

// LowerVector lowers the index of a vector: v_μ = g_{μν} v^ν.
func LowerVector(g Matrix, v []float64) []float64 {
	return RaiseVector(g, v) // same contraction with g in place of g⁻¹
}

// RaiseFirst raises the first index of a rank-2 tensor:
// T^μ_ν = g^{μσ} T_{σν}.
func RaiseFirst(ginv, t Matrix) Matrix {
	mustMatch(ginv.Dim, t.Dim)
	return ginv.Mul(t)
}

// LowerFirst lowers the first index: T_{μν} = g_{μσ} T^σ_ν.
func LowerFirst(g, t Matrix) Matrix {
	mustMatch(g.Dim, t.Dim)
	return g.Mul(t)
}

// Contract fully traces a rank-2 tensor against the metric inverse:
// T = g^{μν} T_{μν}.
func Contract(ginv, t Matrix) float64 {
	mustMatch(ginv.Dim, t.Dim)
	s := 0.0
	for i := 0; i < t.Dim; i++ {
		for j := 0; j < t.Dim; j++ {
			s += ginv.At(i, j) * t.At(i, j)
		}
	}
	return s
}

// Dot contracts two vectors through the metric: g_{μν} a^μ b^ν.
func Dot(g Matrix, a, b []float64) float64 {
	mustMatch(g.Dim, len(a))
	mustMatch(g.Dim, len(b))
	s := 0.0
	for i := 0; i < g.Dim; i++ {
		for j := 0; j < g.Dim; j++ {
			s += g.At(i, j) * a[i] * b[j]
		}
	}
	return s
}
