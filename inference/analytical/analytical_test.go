package analytical

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// TestRidgeDominance checks that the balance-consistent ridge carries
// vastly more density than an off-ridge corner for the default
// configuration with its near-delta balance constraint.
func TestRidgeDominance(t *testing.T) {
	y, sigma, sigmaE := 1.5, 0.1, 0.0001
	ridge := LogMarginal(0.75, 0.75, y, sigma, sigmaE)
	corner := LogMarginal(0.0, 0.0, y, sigma, sigmaE)
	// several orders of magnitude in density space
	if ridge-corner < math.Log(1e6) {
		t.Fatalf("Ridge must dominate the corner; log-ratio %v", ridge-corner)
	}
}

// TestRidgeSymmetry checks that the marginal depends on the two
// unmeasured streams only through their sum.
func TestRidgeSymmetry(t *testing.T) {
	y, sigma, sigmaE := 1.5, 0.1, 0.0001
	a := LogMarginal(0.5, 1.0, y, sigma, sigmaE)
	b := LogMarginal(1.0, 0.5, y, sigma, sigmaE)
	c := LogMarginal(0.75, 0.75, y, sigma, sigmaE)
	if math.Abs(a-b) > 1e-9 || math.Abs(a-c) > 1e-9 {
		t.Fatalf("Marginal must be a function of the stream sum; got %v, %v, %v", a, b, c)
	}
}

// TestAgainstNumericIntegration checks the closed form against a dense
// one-dimensional quadrature of the Gaussian product over the feed flow.
func TestAgainstNumericIntegration(t *testing.T) {
	y, sigma, sigmaE := 1.5, 0.5, 0.2
	for _, s := range []float64{0.5, 1.0, 1.3, 1.5, 2.0} {
		x2 := s / 2.0
		x3 := s / 2.0
		want := LogMarginal(x2, x3, y, sigma, sigmaE)

		// integrate the normalized Gaussian product over a range wide
		// enough that the truncation error is negligible
		axis := floats.Span(make([]float64, 20001), -10.0, 13.0)
		values := make([]float64, len(axis))
		norm := 1.0 / (2.0 * math.Pi * sigma * sigmaE)
		for i, x1 := range axis {
			d := y - x1
			r := x1 - s
			values[i] = norm * math.Exp(-d*d/(2.0*sigma*sigma)-r*r/(2.0*sigmaE*sigmaE))
		}
		got := math.Log(integrate.Trapezoidal(axis, values))
		if math.Abs(got-want) > 1e-4 {
			t.Fatalf("Closed form deviates from numeric integral for sum %v; expected %v, got %v", s, want, got)
		}
	}
}

// TestSurface checks the shape and values of a surface evaluation.
func TestSurface(t *testing.T) {
	y, sigma, sigmaE := 1.5, 0.1, 0.0001
	ax2 := []float64{0.5, 0.75}
	ax3 := []float64{0.25, 0.75, 1.0}
	surface := Surface(ax2, ax3, y, sigma, sigmaE)
	if len(surface) != 2 || len(surface[0]) != 3 {
		t.Fatalf("Wrong surface shape")
	}
	if surface[1][1] != LogMarginal(0.75, 0.75, y, sigma, sigmaE) {
		t.Fatalf("Wrong surface value")
	}
}
