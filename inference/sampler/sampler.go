package sampler

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/flowsight/flowinfer/inference"
)

// Package for the single-chain random-walk Metropolis sampler over the
// bounded flow posterior.

// Default sampling parameters. The proposal half-width is tuned to be
// local relative to the default flow bounds, not absolute.
const (
	DefaultStep       = 0.29
	DefaultIterations = 1_500_000
)

// ChainState is the sampler's current position and its log-density.
type ChainState struct {
	X    inference.FlowVector // current flow vector
	LogP float64              // log-density of the current flow vector
}

// Chain records one flow vector per iteration of a sampling run,
// whether the iteration accepted its proposal or repeated the previous
// state. No burn-in is discarded; that is a post-processing concern of
// the caller.
type Chain struct {
	States   []inference.FlowVector // recorded trajectory
	Accepted int                    // number of accepted proposals
}

// AcceptanceRate returns the fraction of accepted proposals.
func (c *Chain) AcceptanceRate() float64 {
	if len(c.States) == 0 {
		return 0.0
	}
	return float64(c.Accepted) / float64(len(c.States))
}

// Sampler draws a sequence of correlated samples from the unnormalized
// posterior of a model using a random-walk Metropolis chain. The random
// generator is owned explicitly so that runs are reproducible for a
// fixed seed.
type Sampler struct {
	model *inference.Model
	step  float64 // half-width of the uniform proposal per coordinate
	rg    *rand.Rand
}

// New creates a sampler for the given model, proposal half-width, and
// random generator.
func New(m *inference.Model, step float64, rg *rand.Rand) (*Sampler, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if step <= 0.0 {
		return nil, fmt.Errorf("sampler: proposal half-width must be positive; got %v", step)
	}
	return &Sampler{model: m, step: step, rg: rg}, nil
}

// InitialState returns the chain state at the midpoint of the flow
// bounds. The midpoint must be feasible; otherwise initialization fails.
func (s *Sampler) InitialState() (ChainState, error) {
	x := s.model.Bounds.Midpoint()
	logp := s.model.LogPosterior(x)
	if logp <= inference.LogProbZero {
		return ChainState{}, fmt.Errorf("sampler: midpoint %v of the flow bounds is infeasible", x)
	}
	return ChainState{X: x, LogP: logp}, nil
}

// Step performs one Metropolis transition from the current state. Each
// coordinate of the proposal is perturbed independently by a uniform
// draw within the proposal half-width. The second return value reports
// whether the proposal was accepted. An infeasible proposal carries the
// log-density sentinel and is always rejected.
func (s *Sampler) Step(cur ChainState) (ChainState, bool) {
	var cand inference.FlowVector
	for i := 0; i < len(cand); i++ {
		cand[i] = cur.X[i] - s.step + 2.0*s.step*s.rg.Float64()
	}
	logp := s.model.LogPosterior(cand)

	delta := logp - cur.LogP
	if delta > 0.0 {
		delta = 0.0
	}
	// Float64 may return exactly zero; clamp the draw away from zero so
	// that log(u) stays finite and cannot trivially accept.
	u := s.rg.Float64()
	if u <= 0.0 {
		u = math.SmallestNonzeroFloat64
	}
	if math.Log(u) < delta {
		return ChainState{X: cand, LogP: logp}, true
	}
	return cur, false
}

// Run produces a chain with the given number of iterations starting at
// the midpoint of the flow bounds. Every iteration appends exactly one
// state to the chain.
func (s *Sampler) Run(iterations int) (*Chain, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("sampler: iteration count must be positive; got %v", iterations)
	}
	state, err := s.InitialState()
	if err != nil {
		return nil, err
	}
	chain := &Chain{States: make([]inference.FlowVector, iterations)}
	for it := 0; it < iterations; it++ {
		next, accepted := s.Step(state)
		if accepted {
			chain.Accepted++
		}
		state = next
		chain.States[it] = state.X
	}
	return chain, nil
}
