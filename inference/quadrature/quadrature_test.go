package quadrature

import (
	"math"
	"testing"

	"github.com/flowsight/flowinfer/inference"
	"gonum.org/v1/gonum/integrate"
)

// smoothTestModel returns a model whose posterior is well resolved by a
// moderate grid (both Gaussian widths are large relative to the spacing).
func smoothTestModel(t *testing.T) *inference.Model {
	m, err := inference.NewModel(1.5, 0.3, 0.15, inference.Bounds{
		Alpha: inference.FlowVector{0, 0, 0},
		Beta:  inference.FlowVector{3, 3, 3},
	})
	if err != nil {
		t.Fatalf("Failed to create model. Error: %v", err)
	}
	return m
}

// TestReduceConstant checks the reduction of a constant density where
// all integrals are known exactly.
func TestReduceConstant(t *testing.T) {
	b := inference.Bounds{Alpha: inference.FlowVector{0, 0, 0}, Beta: inference.FlowVector{3, 3, 3}}
	g, err := NewGrid(b, 31)
	if err != nil {
		t.Fatalf("Failed to create grid. Error: %v", err)
	}
	field := NewDensityField(g, func(inference.FlowVector) float64 { return 1.0 })
	red, err := field.Reduce([3]int{0, 1, 2})
	if err != nil {
		t.Fatalf("Failed to reduce field. Error: %v", err)
	}
	if math.Abs(red.Integral-27.0) > 1e-9 {
		t.Fatalf("Wrong box volume; expected 27, got %v", red.Integral)
	}
	for _, v := range red.Line {
		if math.Abs(v-9.0) > 1e-9 {
			t.Fatalf("Wrong 1-D marginal of constant density; expected 9, got %v", v)
		}
	}
	for _, row := range red.Plane {
		for _, v := range row {
			if math.Abs(v-3.0) > 1e-9 {
				t.Fatalf("Wrong 2-D marginal of constant density; expected 3, got %v", v)
			}
		}
	}
}

// TestReduceOrderInvariance checks that the full integral does not
// depend on the axis elimination order.
func TestReduceOrderInvariance(t *testing.T) {
	m := smoothTestModel(t)
	g, err := NewGrid(m.Bounds, 41)
	if err != nil {
		t.Fatalf("Failed to create grid. Error: %v", err)
	}
	field := NewDensityField(g, m.Density)
	orders := [][3]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	first := 0.0
	for i, order := range orders {
		red, err := field.Reduce(order)
		if err != nil {
			t.Fatalf("Failed to reduce field. Error: %v", err)
		}
		if i == 0 {
			first = red.Integral
			continue
		}
		if math.Abs(red.Integral-first) > 1e-12*math.Abs(first) {
			t.Fatalf("Integral depends on the elimination order; %v vs %v", first, red.Integral)
		}
	}
}

// TestReduceRejectsInvalidOrder checks the permutation validation.
func TestReduceRejectsInvalidOrder(t *testing.T) {
	b := inference.Bounds{Alpha: inference.FlowVector{0, 0, 0}, Beta: inference.FlowVector{3, 3, 3}}
	g, err := NewGrid(b, 5)
	if err != nil {
		t.Fatalf("Failed to create grid. Error: %v", err)
	}
	field := NewDensityField(g, func(inference.FlowVector) float64 { return 1.0 })
	if _, err := field.Reduce([3]int{0, 0, 2}); err == nil {
		t.Fatalf("Repeated axis must be rejected")
	}
	if _, err := field.Reduce([3]int{0, 1, 3}); err == nil {
		t.Fatalf("Axis out of range must be rejected")
	}
}

// TestReduceSeparable checks the nested reduction against the product of
// one-dimensional trapezoidal integrals for a separable density.
func TestReduceSeparable(t *testing.T) {
	b := inference.Bounds{Alpha: inference.FlowVector{0, 0, 0}, Beta: inference.FlowVector{3, 3, 3}}
	g, err := NewGrid(b, 51)
	if err != nil {
		t.Fatalf("Failed to create grid. Error: %v", err)
	}
	gauss := func(v float64) float64 {
		d := v - 1.5
		return math.Exp(-d * d / (2.0 * 0.25))
	}
	field := NewDensityField(g, func(x inference.FlowVector) float64 {
		return gauss(x[0]) * gauss(x[1]) * gauss(x[2])
	})
	red, err := field.Reduce([3]int{2, 1, 0})
	if err != nil {
		t.Fatalf("Failed to reduce field. Error: %v", err)
	}
	line := make([]float64, g.Pts())
	for i, v := range g.Axis(0) {
		line[i] = gauss(v)
	}
	oneDim := integrate.Trapezoidal(g.Axis(0), line)
	want := oneDim * oneDim * oneDim
	if math.Abs(red.Integral-want) > 1e-12*want {
		t.Fatalf("Separable integral mismatch; expected %v, got %v", want, red.Integral)
	}
}

// TestIntegrateNormalization checks that the normalized marginals
// integrate to one within the discretization error.
func TestIntegrateNormalization(t *testing.T) {
	m := smoothTestModel(t)
	res, err := Integrate(m, 81)
	if err != nil {
		t.Fatalf("Failed to integrate posterior. Error: %v", err)
	}
	if res.Z <= 0.0 {
		t.Fatalf("Evidence must be positive; got %v", res.Z)
	}
	for i := 0; i < 3; i++ {
		total := integrate.Trapezoidal(res.Grid.Axis(i), res.Marginals[i])
		if math.Abs(total-1.0) > 1e-3 {
			t.Fatalf("Normalized marginal %v must integrate to one; got %v", i, total)
		}
	}
	// the pairwise marginal over the two unmeasured streams integrates
	// to one as well
	pts := res.Grid.Pts()
	line := make([]float64, pts)
	for r := 0; r < pts; r++ {
		line[r] = integrate.Trapezoidal(res.Grid.Axis(2), res.Pair[r])
	}
	total := integrate.Trapezoidal(res.Grid.Axis(1), line)
	if math.Abs(total-1.0) > 1e-3 {
		t.Fatalf("Pairwise marginal must integrate to one; got %v", total)
	}
}

// TestIntegrateSymmetry checks that the two unmeasured streams have
// identical marginals for a symmetric configuration.
func TestIntegrateSymmetry(t *testing.T) {
	m := smoothTestModel(t)
	res, err := Integrate(m, 61)
	if err != nil {
		t.Fatalf("Failed to integrate posterior. Error: %v", err)
	}
	for j := 0; j < res.Grid.Pts(); j++ {
		if math.Abs(res.Marginals[1][j]-res.Marginals[2][j]) > 1e-9 {
			t.Fatalf("Marginals of the unmeasured streams must agree; %v vs %v at %v",
				res.Marginals[1][j], res.Marginals[2][j], j)
		}
	}
}
