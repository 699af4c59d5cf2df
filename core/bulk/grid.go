// core/bulk/grid.go
package bulk

import "fmt"

// Grid is a uniform periodic 1-D spatial grid over [0, L).
type Grid struct {
	N  int     // sample points
	L  float64 // domain length
	Dx float64 // spacing L/N (periodic: point N wraps to 0)
}

// NewGrid validates and builds a grid. Centered second differences
// need at least four points to be meaningful.
func NewGrid(n int, length float64) (Grid, error) {
	if n < 4 {
		return Grid{}, fmt.Errorf("bulk: grid needs at least 4 points, got %d", n)
	}
	if length <= 0 {
		return Grid{}, fmt.Errorf("bulk: domain length must be positive, got %g", length)
	}
	return Grid{N: n, L: length, Dx: length / float64(n)}, nil
}

// X returns the coordinate of grid point i.
func (g Grid) X(i int) float64 { return float64(i) * g.Dx }

// Wrap maps an arbitrary coordinate into [0, L).
func (g Grid) Wrap(x float64) float64 {
	x -= g.L * float64(int(x/g.L))
	if x < 0 {
		x += g.L
	}
	return x
}

// NearestIndex returns the grid index closest to x (periodic).
func (g Grid) NearestIndex(x float64) int {
	i := int(g.Wrap(x)/g.Dx + 0.5)
	return i % g.N
}
