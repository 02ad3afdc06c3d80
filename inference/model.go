package inference

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default model configuration for a splitter with one measured feed
// stream and two unmeasured outlet streams.
var (
	DefaultMeasurement = 1.5                   // measured flow of the feed stream (t/h)
	DefaultSigma       = 0.1                   // standard deviation of the flow measurement
	DefaultSigmaE      = 0.0001                // standard deviation of the balance-equation error
	DefaultIncidence   = FlowVector{1, -1, -1} // incidence coefficients of the balance equation
	DefaultAlpha       = FlowVector{0, 0, 0}   // lower flow bounds
	DefaultBeta        = FlowVector{3, 3, 3}   // upper flow bounds
)

// FlowVector holds the mass flow rates of the three streams of the
// balance equation (t/h).
type FlowVector [3]float64

// Bounds defines the axis-aligned box of feasible flow values.
type Bounds struct {
	Alpha FlowVector `json:"alpha"` // lower bounds
	Beta  FlowVector `json:"beta"`  // upper bounds
}

// Midpoint returns the centre point of the box.
func (b *Bounds) Midpoint() FlowVector {
	var m FlowVector
	for i := 0; i < len(m); i++ {
		m[i] = b.Alpha[i] + (b.Beta[i]-b.Alpha[i])/2.0
	}
	return m
}

// Contains checks whether a flow vector lies strictly inside the box.
// Points on the boundary are treated as infeasible.
func (b *Bounds) Contains(x FlowVector) bool {
	for i := 0; i < len(x); i++ {
		if x[i] <= b.Alpha[i] || x[i] >= b.Beta[i] {
			return false
		}
	}
	return true
}

// Model is the immutable configuration of one inference run. It combines
// the flow measurement of the feed stream, the measurement and
// balance-error variances, the incidence coefficients of the balance
// equation, and the box bounds of the feasible flow domain.
type Model struct {
	Y         float64    // measured flow of the feed stream
	Sigma     float64    // standard deviation of the measurement
	SigmaE    float64    // standard deviation of the balance-equation error
	Incidence FlowVector // coefficients of the balance equation
	Bounds    Bounds     // feasible flow domain
}

// NewModel creates a validated model for the given measurement,
// standard deviations, and flow bounds. The incidence vector of the
// splitter balance (feed minus the two outlet streams) is fixed.
func NewModel(y float64, sigma float64, sigmaE float64, bounds Bounds) (*Model, error) {
	m := &Model{
		Y:         y,
		Sigma:     sigma,
		SigmaE:    sigmaE,
		Incidence: DefaultIncidence,
		Bounds:    bounds,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewDefaultModel creates the default splitter model.
func NewDefaultModel() *Model {
	m, err := NewModel(DefaultMeasurement, DefaultSigma, DefaultSigmaE, Bounds{
		Alpha: DefaultAlpha,
		Beta:  DefaultBeta,
	})
	if err != nil {
		panic("default model configuration is invalid")
	}
	return m
}

// Validate checks the model configuration. A degenerate configuration is
// rejected before a run starts rather than producing silently wrong
// results downstream.
func (m *Model) Validate() error {
	if m.Sigma <= 0.0 {
		return fmt.Errorf("model: measurement deviation must be positive; got %v", m.Sigma)
	}
	if m.SigmaE <= 0.0 {
		return fmt.Errorf("model: balance-error deviation must be positive; got %v", m.SigmaE)
	}
	for i := 0; i < len(m.Bounds.Alpha); i++ {
		if m.Bounds.Alpha[i] >= m.Bounds.Beta[i] {
			return fmt.Errorf("model: empty flow domain for stream %d; lower bound %v exceeds upper bound %v", i+1, m.Bounds.Alpha[i], m.Bounds.Beta[i])
		}
	}
	return nil
}

// ModelJSON is the model configuration in JSON format.
type ModelJSON struct {
	Measurement float64    `json:"measurement"`
	Sigma       float64    `json:"sigma"`
	SigmaE      float64    `json:"sigmaE"`
	Incidence   FlowVector `json:"incidence"`
	Alpha       FlowVector `json:"alpha"`
	Beta        FlowVector `json:"beta"`
}

// NewModelJSON converts a model to its JSON format.
func NewModelJSON(m *Model) ModelJSON {
	return ModelJSON{
		Measurement: m.Y,
		Sigma:       m.Sigma,
		SigmaE:      m.SigmaE,
		Incidence:   m.Incidence,
		Alpha:       m.Bounds.Alpha,
		Beta:        m.Bounds.Beta,
	}
}

// Model converts the JSON format back to a validated model.
func (j *ModelJSON) Model() (*Model, error) {
	m := &Model{
		Y:         j.Measurement,
		Sigma:     j.Sigma,
		SigmaE:    j.SigmaE,
		Incidence: j.Incidence,
		Bounds:    Bounds{Alpha: j.Alpha, Beta: j.Beta},
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadModel reads a model file in JSON format and validates it.
func ReadModel(filename string) (*Model, error) {
	file, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file; %v", err)
	}
	var j ModelJSON
	if err := json.Unmarshal(file, &j); err != nil {
		return nil, fmt.Errorf("cannot parse model file %v; %v", filename, err)
	}
	return j.Model()
}

// WriteJSON writes the model configuration into a JSON file.
func (m *Model) WriteJSON(filename string) error {
	j := NewModelJSON(m)
	out, err := json.MarshalIndent(&j, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to convert model to JSON; %v", err)
	}
	if err := os.WriteFile(filename, out, 0644); err != nil {
		return fmt.Errorf("failed to write model file; %v", err)
	}
	return nil
}
