package inference

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Credible-interval probabilities of the chain summary.
const (
	lowerQuantile = 0.025
	upperQuantile = 0.975
)

// Summary holds the posterior statistics of a sample chain.
type Summary struct {
	N          int           // number of summarized states
	Mean       FlowVector    // posterior mean per stream
	StdDev     FlowVector    // posterior standard deviation per stream
	Lower      FlowVector    // 2.5% quantile per stream
	Median     FlowVector    // 50% quantile per stream
	Upper      FlowVector    // 97.5% quantile per stream
	Covariance *mat.SymDense // posterior covariance of the flow vector
}

// Discard removes the first n states of a chain (burn-in).
func Discard(states []FlowVector, n int) []FlowVector {
	if n <= 0 {
		return states
	}
	if n >= len(states) {
		return nil
	}
	return states[n:]
}

// Thin keeps every k-th state of a chain.
func Thin(states []FlowVector, k int) []FlowVector {
	if k <= 1 {
		return states
	}
	thinned := make([]FlowVector, 0, (len(states)+k-1)/k)
	for i := 0; i < len(states); i += k {
		thinned = append(thinned, states[i])
	}
	return thinned
}

// Component extracts the flow values of a single stream from a chain.
func Component(states []FlowVector, i int) []float64 {
	values := make([]float64, len(states))
	for j, x := range states {
		values[j] = x[i]
	}
	return values
}

// Summarize computes the posterior statistics of a chain.
func Summarize(states []FlowVector) (*Summary, error) {
	n := len(states)
	if n == 0 {
		return nil, fmt.Errorf("summary: empty chain")
	}
	s := &Summary{N: n}
	flat := make([]float64, 0, 3*n)
	for _, x := range states {
		flat = append(flat, x[0], x[1], x[2])
	}
	for i := 0; i < 3; i++ {
		values := Component(states, i)
		s.Mean[i] = stat.Mean(values, nil)
		s.StdDev[i] = stat.StdDev(values, nil)
		sort.Float64s(values)
		s.Lower[i] = stat.Quantile(lowerQuantile, stat.Empirical, values, nil)
		s.Median[i] = stat.Quantile(0.5, stat.Empirical, values, nil)
		s.Upper[i] = stat.Quantile(upperQuantile, stat.Empirical, values, nil)
	}
	s.Covariance = mat.NewSymDense(3, nil)
	stat.CovarianceMatrix(s.Covariance, mat.NewDense(n, 3, flat), nil)
	return s, nil
}

// Histogram estimates a density on [lo,hi] from samples using equal-width
// bins. The returned bin heights are normalized so that the piecewise
// constant density integrates to one; samples outside [lo,hi] are ignored.
func Histogram(samples []float64, lo float64, hi float64, bins int) ([]float64, error) {
	if bins < 1 {
		return nil, fmt.Errorf("histogram: at least one bin required; got %v", bins)
	}
	if lo >= hi {
		return nil, fmt.Errorf("histogram: empty range [%v,%v]", lo, hi)
	}
	width := (hi - lo) / float64(bins)
	counts := make([]float64, bins)
	total := 0
	for _, v := range samples {
		if v < lo || v > hi {
			continue
		}
		idx := int((v - lo) / width)
		if idx == bins {
			idx = bins - 1
		}
		counts[idx]++
		total++
	}
	if total == 0 {
		return counts, nil
	}
	for i := range counts {
		counts[i] /= float64(total) * width
	}
	return counts, nil
}
