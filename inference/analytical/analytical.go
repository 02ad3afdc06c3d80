package analytical

import (
	"math"
)

// Package for the closed-form marginal over the two unmeasured streams,
// obtained by integrating the feed-stream flow out of the Gaussian
// product analytically. The closed form integrates over the whole real
// line; it matches the bounded-domain posterior only when the flow
// bounds are wide relative to the Gaussian widths, so it serves as an
// approximate validation oracle rather than an identity.

// LogMarginal returns the closed-form log-density of the (x2,x3)
// marginal for measurement y with measurement deviation sigma and
// balance-error deviation sigmaE.
func LogMarginal(x2 float64, x3 float64, y float64, sigma float64, sigmaE float64) float64 {
	s := x2 + x3
	a := 1.0/(2.0*sigma*sigma) + 1.0/(2.0*sigmaE*sigmaE)
	b := y/(sigma*sigma) + s/(sigmaE*sigmaE)
	return -0.5*math.Log(2.0*math.Pi*sigma*sigma) -
		0.5*math.Log(2.0*math.Pi*sigmaE*sigmaE) -
		s*s/(2.0*sigmaE*sigmaE) -
		y*y/(2.0*sigma*sigma) +
		0.5*math.Log(math.Pi/a) +
		b*b/(4.0*a)
}

// Surface evaluates LogMarginal on the cartesian product of the two
// axes. Rows follow ax2 and columns follow ax3.
func Surface(ax2 []float64, ax3 []float64, y float64, sigma float64, sigmaE float64) [][]float64 {
	surface := make([][]float64, len(ax2))
	for r, x2 := range ax2 {
		surface[r] = make([]float64, len(ax3))
		for c, x3 := range ax3 {
			surface[r][c] = LogMarginal(x2, x3, y, sigma, sigmaE)
		}
	}
	return surface
}
