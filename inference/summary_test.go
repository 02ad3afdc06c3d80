package inference

import (
	"math"
	"math/rand"
	"testing"
)

// TestDiscardThin checks the chain post-processing helpers.
func TestDiscardThin(t *testing.T) {
	states := make([]FlowVector, 10)
	for i := range states {
		states[i] = FlowVector{float64(i), 0, 0}
	}
	if got := Discard(states, 4); len(got) != 6 || got[0][0] != 4.0 {
		t.Fatalf("Wrong burn-in discard; got %v", got)
	}
	if got := Discard(states, 0); len(got) != 10 {
		t.Fatalf("Zero burn-in must keep the chain")
	}
	if got := Discard(states, 10); got != nil {
		t.Fatalf("Full burn-in must empty the chain")
	}
	if got := Thin(states, 3); len(got) != 4 || got[1][0] != 3.0 {
		t.Fatalf("Wrong thinning; got %v", got)
	}
	if got := Thin(states, 1); len(got) != 10 {
		t.Fatalf("Thinning interval of one must keep the chain")
	}
}

// TestSummarize checks the summary of a two-state chain.
func TestSummarize(t *testing.T) {
	states := []FlowVector{
		{1.0, 2.0, 3.0},
		{3.0, 2.0, 1.0},
	}
	s, err := Summarize(states)
	if err != nil {
		t.Fatalf("Failed to summarize chain. Error: %v", err)
	}
	if s.N != 2 {
		t.Fatalf("Wrong chain length %v", s.N)
	}
	if s.Mean != (FlowVector{2.0, 2.0, 2.0}) {
		t.Fatalf("Wrong posterior mean %v", s.Mean)
	}
	if math.Abs(s.StdDev[1]) > 1e-12 {
		t.Fatalf("Constant stream must have zero deviation; got %v", s.StdDev[1])
	}
	// streams one and three move in opposite directions
	if s.Covariance.At(0, 2) >= 0.0 {
		t.Fatalf("Expected negative covariance; got %v", s.Covariance.At(0, 2))
	}
	if _, err := Summarize(nil); err == nil {
		t.Fatalf("Empty chain must be rejected")
	}
}

// TestHistogram checks that the histogram density integrates to one.
func TestHistogram(t *testing.T) {
	rg := rand.New(rand.NewSource(4711))
	samples := make([]float64, 10000)
	for i := range samples {
		samples[i] = 3.0 * rg.Float64()
	}
	bins := 30
	h, err := Histogram(samples, 0.0, 3.0, bins)
	if err != nil {
		t.Fatalf("Failed to compute histogram. Error: %v", err)
	}
	width := 3.0 / float64(bins)
	sum := 0.0
	for _, v := range h {
		sum += v * width
	}
	if math.Abs(sum-1.0) > 1e-12 {
		t.Fatalf("Histogram density must integrate to one; got %v", sum)
	}
	// uniform samples should give a roughly flat density of 1/3
	for i, v := range h {
		if math.Abs(v-1.0/3.0) > 0.1 {
			t.Fatalf("Bin %v deviates from the uniform density; got %v", i, v)
		}
	}
}

// TestHistogramRejectsDegenerate checks the histogram argument validation.
func TestHistogramRejectsDegenerate(t *testing.T) {
	if _, err := Histogram(nil, 0.0, 3.0, 0); err == nil {
		t.Fatalf("Zero bins must be rejected")
	}
	if _, err := Histogram(nil, 3.0, 3.0, 10); err == nil {
		t.Fatalf("Empty range must be rejected")
	}
}
