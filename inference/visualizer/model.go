package visualizer

import (
	"fmt"
	"math"

	"github.com/flowsight/flowinfer/inference"
	"github.com/flowsight/flowinfer/inference/analytical"
)

// ResultData contains the data of an inference results file that is
// used for visualization.
type ResultData struct {
	ModelLabel string               // short description of the model configuration
	Incidence  inference.FlowVector // incidence coefficients of the balance equation
	Z          float64              // evidence computed by the quadrature

	Axes        [3][]float64 // grid coordinates per stream
	Marginals   [3][]float64 // normalized 1-D marginal densities per stream
	HistCenters [3][]float64 // bin centres of the chain histograms
	Histograms  [3][]float64 // chain histogram densities

	RidgeX     []float64 // diagonal coordinate of the (x2,x3) ridge cut
	RidgeQuad  []float64 // log pair-marginal of the quadrature along the diagonal
	RidgeExact []float64 // closed-form log marginal along the diagonal

	Summary *inference.SummaryJSON // chain summary if a sampling run is present
}

// results is the singleton for the viewing model.
var results ResultData

// GetResultData returns the pointer to the singleton.
func GetResultData() *ResultData {
	return &results
}

// PopulateResultData populates the view model from a results file.
func (r *ResultData) PopulateResultData(d *inference.ResultsJSON) {
	m := d.Model
	r.ModelLabel = fmt.Sprintf("y=%v, σ=%v, σₑ=%v", m.Measurement, m.Sigma, m.SigmaE)
	r.Incidence = m.Incidence
	r.Z = d.Z
	r.Axes = d.Axes
	r.Marginals = d.Marginals
	r.Summary = d.Summary

	// bin centres for the chain histograms (bins span adjacent grid points)
	r.Histograms = [3][]float64{}
	r.HistCenters = [3][]float64{}
	for i := 0; i < 3; i++ {
		// a malformed results file may carry histograms that do not
		// match the grid; skip them instead of serving broken charts
		if len(d.Histograms[i]) == 0 || len(d.Histograms[i]) != len(d.Axes[i])-1 {
			continue
		}
		r.Histograms[i] = d.Histograms[i]
		centers := make([]float64, len(d.Histograms[i]))
		for j := range centers {
			centers[j] = (d.Axes[i][j] + d.Axes[i][j+1]) / 2.0
		}
		r.HistCenters[i] = centers
	}

	// cut the pairwise marginal along the diagonal of the two unmeasured
	// streams and overlay the closed-form marginal; the closed form omits
	// the box normalization, so it is shifted onto the quadrature scale.
	r.RidgeX = nil
	r.RidgeQuad = nil
	r.RidgeExact = nil
	n := len(d.Pair)
	if n == 0 || n > len(d.Axes[1]) || n > len(d.Axes[2]) {
		return
	}
	offset := 0.5*math.Log(2.0*math.Pi*m.Sigma*m.Sigma) +
		0.5*math.Log(2.0*math.Pi*m.SigmaE*m.SigmaE) -
		math.Log(d.Z)
	for j := 0; j < n; j++ {
		if j >= len(d.Pair[j]) {
			continue
		}
		q := d.Pair[j][j]
		if q <= 0.0 {
			continue
		}
		x2 := d.Axes[1][j]
		x3 := d.Axes[2][j]
		r.RidgeX = append(r.RidgeX, x2)
		r.RidgeQuad = append(r.RidgeQuad, math.Log(q))
		r.RidgeExact = append(r.RidgeExact, analytical.LogMarginal(x2, x3, m.Measurement, m.Sigma, m.SigmaE)+offset)
	}
}
