// core/tensor/rank.go
// Rank-3 and rank-4 components, flat-backed like Matrix. Used for
// Christoffel symbols (Γ^λ_{μν}) and their coordinate derivatives.

package tensor

import "fmt"

// Tensor3 is a rank-3 tensor with uniform dimension per index.
type Tensor3 struct {
	Dim  int
	data []float64
}

// NewTensor3 returns a zero dim×dim×dim tensor.
func NewTensor3(dim int) Tensor3 {
	if dim < 1 {
		panic(fmt.Sprintf("tensor: invalid tensor dim %d", dim))
	}
	return Tensor3{Dim: dim, data: make([]float64, dim*dim*dim)}
}

func (t Tensor3) idx(i, j, k int) int {
	d := t.Dim
	if i < 0 || i >= d || j < 0 || j >= d || k < 0 || k >= d {
		panic(fmt.Sprintf("tensor: index (%d,%d,%d) out of range for dim %d", i, j, k, d))
	}
	return (i*d+j)*d + k
}

// At returns component (i,j,k).
func (t Tensor3) At(i, j, k int) float64 { return t.data[t.idx(i, j, k)] }

// Set assigns component (i,j,k).
func (t *Tensor3) Set(i, j, k int, v float64) { t.data[t.idx(i, j, k)] = v }

// Tensor4 is a rank-4 tensor with uniform dimension per index.
type Tensor4 struct {
	Dim  int
	data []float64
}

// NewTensor4 returns a zero dim⁴ tensor.
func NewTensor4(dim int) Tensor4 {
	if dim < 1 {
		panic(fmt.Sprintf("tensor: invalid tensor dim %d", dim))
	}
	return Tensor4{Dim: dim, data: make([]float64, dim*dim*dim*dim)}
}

func (t Tensor4) idx(i, j, k, l int) int {
	d := t.Dim
	if i < 0 || i >= d || j < 0 || j >= d || k < 0 || k >= d || l < 0 || l >= d {
		panic(fmt.Sprintf("tensor: index (%d,%d,%d,%d) out of range for dim %d", i, j, k, l, d))
	}
	return ((i*d+j)*d+k)*d + l
}

// At returns component (i,j,k,l).
func (t Tensor4) At(i, j, k, l int) float64 { return t.data[t.idx(i, j, k, l)] }

// Set assigns component (i,j,k,l).
func (t *Tensor4) Set(i, j, k, l int, v float64) { t.data[t.idx(i, j, k, l)] = v }
