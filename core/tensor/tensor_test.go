// core/tensor/tensor_test.go
package tensor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// g · g⁻¹ must reproduce the identity within 1e-9 for any
// non-singular metric.
func TestInverseRoundTrip(t *testing.T) {
	cases := [][][]float64{
		{{-1, 0}, {0, 1}},
		{{2, 1}, {1, 3}},
		{{-2.5, 0.3, 0}, {0.3, 1.1, -0.2}, {0, -0.2, 4.0}},
		{{1, 2, 3, 0}, {2, 1, 0, 1}, {3, 0, 2, 2}, {0, 1, 2, 5}},
	}
	for _, rows := range cases {
		g, err := FromRows(rows)
		require.NoError(t, err)

		inv, err := g.Inverse()
		require.NoError(t, err)

		id := g.Mul(inv)
		for i := 0; i < g.Dim; i++ {
			for j := 0; j < g.Dim; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				assert.InDelta(t, want, id.At(i, j), 1e-9, "dim %d entry (%d,%d)", g.Dim, i, j)
			}
		}
	}
}

func TestInverseSingular(t *testing.T) {
	g, err := FromRows([][]float64{{1, 2}, {2, 4}})
	require.NoError(t, err)

	_, err = g.Inverse()
	require.Error(t, err)

	var sing *SingularMatrixError
	require.True(t, errors.As(err, &sing), "want SingularMatrixError, got %v", err)
	assert.Less(t, math.Abs(sing.Pivot), PivotFloor)
}

func TestDeterminant(t *testing.T) {
	tests := []struct {
		rows [][]float64
		want float64
	}{
		{[][]float64{{3}}, 3},
		{[][]float64{{-1, 0}, {0, 1}}, -1},
		{[][]float64{{2, 1}, {1, 3}}, 5},
		{[][]float64{{1, 2}, {2, 4}}, 0}, // singular ⇒ 0, not an error
		{[][]float64{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}, 24},
	}
	for _, tc := range tests {
		m, err := FromRows(tc.rows)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, m.Determinant(), 1e-12)
	}
}

func TestRaiseLowerRoundTrip(t *testing.T) {
	g := Diagonal(-1, 1, 1)
	ginv, err := g.Inverse()
	require.NoError(t, err)

	v := []float64{0.7, -1.2, 3.0}
	down := LowerVector(g, v)
	up := RaiseVector(ginv, down)
	for i := range v {
		assert.InDelta(t, v[i], up[i], 1e-12)
	}
}

func TestContractIsMetricTrace(t *testing.T) {
	g := Diagonal(-1, 1)
	ginv, err := g.Inverse()
	require.NoError(t, err)

	// g^{μν} g_{μν} = dim.
	assert.InDelta(t, 2.0, Contract(ginv, g), 1e-12)
}

func TestShapeChecks(t *testing.T) {
	_, err := FromRows([][]float64{{1, 2}, {3}})
	require.Error(t, err)

	assert.Panics(t, func() { NewMatrix(0) })
	assert.Panics(t, func() {
		m := NewMatrix(2)
		m.At(2, 0)
	})
	assert.Panics(t, func() {
		a := NewMatrix(2)
		b := NewMatrix(3)
		a.Add(b)
	})
}
