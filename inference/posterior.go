package inference

import (
	"math"
)

// LogProbZero is the log-density sentinel for infeasible flow vectors.
// It is smaller than the log-density of any feasible flow so that an
// infeasible proposal is always rejected by the sampler, and its
// exponential saturates to a zero density in the quadrature.
const LogProbZero = -math.MaxFloat64

// Residual returns the signed imbalance of the mass-balance equation
// for the given flow vector.
func (m *Model) Residual(x FlowVector) float64 {
	r := float64(0.0)
	for i := 0; i < len(x); i++ {
		r += m.Incidence[i] * x[i]
	}
	return r
}

// LogPosterior evaluates the unnormalized log-density of the joint
// posterior over the flow vector. The density combines the Gaussian
// measurement likelihood of the feed stream with the Gaussian
// balance-error term; normalizing constants are omitted since only
// density ratios and grid integrals are needed. Flows outside the
// bounded domain map to LogProbZero.
func (m *Model) LogPosterior(x FlowVector) float64 {
	if !m.Bounds.Contains(x) {
		return LogProbZero
	}
	d := m.Y - x[0]
	r := m.Residual(x)
	return -(d*d)/(2.0*m.Sigma*m.Sigma) - (r*r)/(2.0*m.SigmaE*m.SigmaE)
}

// Density evaluates the unnormalized posterior density. Very negative
// log-densities underflow to zero, which contributes nothing to a grid
// integral and never produces a NaN.
func (m *Model) Density(x FlowVector) float64 {
	return math.Exp(m.LogPosterior(x))
}
