package quadrature

import (
	"math"
	"testing"

	"github.com/flowsight/flowinfer/inference"
)

// TestNewGrid checks that the grid spans the bounds inclusively.
func TestNewGrid(t *testing.T) {
	b := inference.Bounds{Alpha: inference.FlowVector{0, -1, 2}, Beta: inference.FlowVector{3, 1, 5}}
	g, err := NewGrid(b, 11)
	if err != nil {
		t.Fatalf("Failed to create grid. Error: %v", err)
	}
	if g.Pts() != 11 {
		t.Fatalf("Wrong number of grid points %v", g.Pts())
	}
	for i := 0; i < 3; i++ {
		axis := g.Axis(i)
		if len(axis) != 11 {
			t.Fatalf("Wrong axis length %v", len(axis))
		}
		if axis[0] != b.Alpha[i] || axis[len(axis)-1] != b.Beta[i] {
			t.Fatalf("Axis %v must span [%v,%v]; got [%v,%v]", i, b.Alpha[i], b.Beta[i], axis[0], axis[len(axis)-1])
		}
	}
	// spacing of the second axis is 0.2
	if math.Abs(g.Axis(1)[1]-g.Axis(1)[0]-0.2) > 1e-12 {
		t.Fatalf("Wrong grid spacing %v", g.Axis(1)[1]-g.Axis(1)[0])
	}
	x := g.At(0, 5, 10)
	want := inference.FlowVector{0, 0, 5}
	for i := 0; i < 3; i++ {
		if math.Abs(x[i]-want[i]) > 1e-12 {
			t.Fatalf("Wrong grid point; expected %v, got %v", want, x)
		}
	}
}

// TestNewGridRejectsDegenerate checks the grid size validation.
func TestNewGridRejectsDegenerate(t *testing.T) {
	b := inference.Bounds{Alpha: inference.FlowVector{0, 0, 0}, Beta: inference.FlowVector{3, 3, 3}}
	if _, err := NewGrid(b, 1); err == nil {
		t.Fatalf("One grid point per axis must be rejected")
	}
}
