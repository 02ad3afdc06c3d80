package quadrature

import (
	"fmt"

	"github.com/flowsight/flowinfer/inference"
	"gonum.org/v1/gonum/integrate"
)

// DensityField stores the values of a density evaluated on every point
// of a grid. The field owns no mutable state after construction and is
// consumed read-only by the reductions.
type DensityField struct {
	grid   *Grid
	values []float64 // row-major with the first axis varying slowest
}

// NewDensityField evaluates the density f on every grid point.
func NewDensityField(g *Grid, f func(inference.FlowVector) float64) *DensityField {
	pts := g.Pts()
	values := make([]float64, pts*pts*pts)
	for i := 0; i < pts; i++ {
		for j := 0; j < pts; j++ {
			for k := 0; k < pts; k++ {
				values[(i*pts+j)*pts+k] = f(g.At(i, j, k))
			}
		}
	}
	return &DensityField{grid: g, values: values}
}

// At returns the density value of the grid point with the given indexes.
func (f *DensityField) At(i int, j int, k int) float64 {
	pts := f.grid.Pts()
	return f.values[(i*pts+j)*pts+k]
}

// Reduction holds the partial integrals produced while eliminating the
// axes of a density field with the one-dimensional trapezoidal rule.
// Eliminating the first axis of the order produces the pairwise marginal
// over the two remaining axes, eliminating the second produces the
// one-dimensional marginal over the last axis, and eliminating the last
// axis produces the full integral.
type Reduction struct {
	Order    [3]int      // axis elimination order
	Plane    [][]float64 // marginal over the two remaining axes (ascending axis order)
	Line     []float64   // marginal over the last remaining axis
	Integral float64     // integral over the full domain
}

// Reduce eliminates all axes of the density field in the given order.
func (f *DensityField) Reduce(order [3]int) (*Reduction, error) {
	var seen [3]bool
	for _, a := range order {
		if a < 0 || a > 2 || seen[a] {
			return nil, fmt.Errorf("reduce: order %v is not a permutation of the axes", order)
		}
		seen[a] = true
	}

	pts := f.grid.Pts()

	// remaining axes after the first elimination, in ascending order
	rem := []int{}
	for a := 0; a < 3; a++ {
		if a != order[0] {
			rem = append(rem, a)
		}
	}

	// collapse the 3-D field to a 2-D plane over the remaining axes
	plane := make([][]float64, pts)
	line := make([]float64, pts)
	var ind [3]int
	for r := 0; r < pts; r++ {
		plane[r] = make([]float64, pts)
		for c := 0; c < pts; c++ {
			ind[rem[0]] = r
			ind[rem[1]] = c
			for t := 0; t < pts; t++ {
				ind[order[0]] = t
				line[t] = f.At(ind[0], ind[1], ind[2])
			}
			plane[r][c] = integrate.Trapezoidal(f.grid.Axis(order[0]), line)
		}
	}

	// collapse the 2-D plane to a 1-D marginal over the last axis
	marginal := make([]float64, pts)
	if order[1] == rem[0] {
		for c := 0; c < pts; c++ {
			for r := 0; r < pts; r++ {
				line[r] = plane[r][c]
			}
			marginal[c] = integrate.Trapezoidal(f.grid.Axis(order[1]), line)
		}
	} else {
		for r := 0; r < pts; r++ {
			marginal[r] = integrate.Trapezoidal(f.grid.Axis(order[1]), plane[r])
		}
	}

	// collapse the 1-D marginal to the full integral
	integral := integrate.Trapezoidal(f.grid.Axis(order[2]), marginal)

	return &Reduction{
		Order:    order,
		Plane:    plane,
		Line:     marginal,
		Integral: integral,
	}, nil
}

// Result bundles the evidence and the normalized marginal densities of a
// quadrature run over the posterior of a model.
type Result struct {
	Grid      *Grid        // grid of the run
	Z         float64      // evidence (normalizing constant)
	Marginals [3][]float64 // normalized 1-D marginal density per stream
	Pair      [][]float64  // normalized 2-D marginal over the two unmeasured streams
}

// Integrate evaluates the unnormalized posterior density of the model on
// a grid with pts points per axis and produces the evidence together
// with the normalized one-dimensional marginals of all streams and the
// pairwise marginal of the two unmeasured streams.
func Integrate(m *inference.Model, pts int) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	g, err := NewGrid(m.Bounds, pts)
	if err != nil {
		return nil, err
	}
	field := NewDensityField(g, m.Density)

	// eliminating the feed-stream axis first yields the pairwise
	// marginal over the two unmeasured streams
	red1, err := field.Reduce([3]int{0, 1, 2})
	if err != nil {
		return nil, err
	}
	z := red1.Integral
	if z <= 0.0 {
		return nil, fmt.Errorf("quadrature: zero evidence; posterior mass not resolved by %v grid points", pts)
	}

	red2, err := field.Reduce([3]int{1, 2, 0})
	if err != nil {
		return nil, err
	}
	red3, err := field.Reduce([3]int{0, 2, 1})
	if err != nil {
		return nil, err
	}

	res := &Result{Grid: g, Z: z}
	res.Marginals[0] = scaled(red2.Line, 1.0/z)
	res.Marginals[1] = scaled(red3.Line, 1.0/z)
	res.Marginals[2] = scaled(red1.Line, 1.0/z)
	res.Pair = make([][]float64, pts)
	for r := 0; r < pts; r++ {
		res.Pair[r] = scaled(red1.Plane[r], 1.0/z)
	}
	return res, nil
}

// scaled returns a scaled copy of a vector.
func scaled(v []float64, c float64) []float64 {
	w := make([]float64, len(v))
	for i := range v {
		w[i] = c * v[i]
	}
	return w
}
