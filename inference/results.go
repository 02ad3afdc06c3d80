package inference

import (
	"encoding/json"
	"fmt"
	"os"
)

// SummaryJSON is a chain summary in JSON format.
type SummaryJSON struct {
	Iterations     int        `json:"iterations"`
	BurnIn         int        `json:"burnIn"`
	AcceptanceRate float64    `json:"acceptanceRate"`
	Mean           FlowVector `json:"mean"`
	StdDev         FlowVector `json:"stdDev"`
	Lower          FlowVector `json:"lower"`
	Median         FlowVector `json:"median"`
	Upper          FlowVector `json:"upper"`
}

// ResultsJSON is the output of an inference run in JSON format. It is
// the surface consumed by the visualizer: grid axes with integrated
// marginal densities from the quadrature, histogram densities estimated
// from a sample chain, and the chain summary. The histogram and summary
// sections are absent for a pure quadrature run.
type ResultsJSON struct {
	Model      ModelJSON    `json:"model"`
	GridPoints int          `json:"gridPoints"`
	Z          float64      `json:"evidence"`
	Axes       [3][]float64 `json:"axes"`
	Marginals  [3][]float64 `json:"marginals"`
	Pair       [][]float64  `json:"pairMarginal,omitempty"`
	Histograms [3][]float64 `json:"histograms,omitempty"`
	Summary    *SummaryJSON `json:"summary,omitempty"`
}

// ReadResults reads a results file in JSON format.
func ReadResults(filename string) (*ResultsJSON, error) {
	file, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file; %v", err)
	}
	var r ResultsJSON
	if err := json.Unmarshal(file, &r); err != nil {
		return nil, fmt.Errorf("cannot parse results file %v; %v", filename, err)
	}
	return &r, nil
}

// WriteJSON writes the results into a JSON file.
func (r *ResultsJSON) WriteJSON(filename string) error {
	out, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to convert results to JSON; %v", err)
	}
	if err := os.WriteFile(filename, out, 0644); err != nil {
		return fmt.Errorf("failed to write results file; %v", err)
	}
	return nil
}
