package quadrature

import (
	"fmt"

	"github.com/flowsight/flowinfer/inference"
	"gonum.org/v1/gonum/floats"
)

// DefaultGridPoints is the default number of grid points per axis.
const DefaultGridPoints = 100

// Grid is a regular discretization of the bounded flow domain with the
// same number of points per axis, inclusive of both bounds.
type Grid struct {
	axes [3][]float64
}

// NewGrid creates a regular grid with pts points per axis spanning the
// given bounds.
func NewGrid(b inference.Bounds, pts int) (*Grid, error) {
	if pts < 2 {
		return nil, fmt.Errorf("grid: at least two points per axis required; got %v", pts)
	}
	g := &Grid{}
	for i := 0; i < len(g.axes); i++ {
		g.axes[i] = floats.Span(make([]float64, pts), b.Alpha[i], b.Beta[i])
		// both bounds are grid points
		g.axes[i][0] = b.Alpha[i]
		g.axes[i][pts-1] = b.Beta[i]
	}
	return g, nil
}

// Pts returns the number of grid points per axis.
func (g *Grid) Pts() int {
	return len(g.axes[0])
}

// Axis returns the grid coordinates along the given axis.
// The returned slice must not be modified.
func (g *Grid) Axis(i int) []float64 {
	return g.axes[i]
}

// At returns the flow vector of the grid point with the given indexes.
func (g *Grid) At(i int, j int, k int) inference.FlowVector {
	return inference.FlowVector{g.axes[0][i], g.axes[1][j], g.axes[2][k]}
}
