package harness

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/qbridge/internal/qasm"
	"github.com/roach88/qbridge/internal/result"
	"github.com/roach88/qbridge/internal/runner"
)

// Runner executes test cases against a circuit on one backend.
type Runner struct {
	Backend   runner.Backend
	Shots     int
	Tolerance float64
}

// CaseResult is the outcome of one test case.
type CaseResult struct {
	Description string             `json:"description"`
	InputState  string             `json:"input_state"`
	Pass        bool               `json:"pass"`
	Actual      map[string]float64 `json:"actual_probabilities,omitempty"`
	Expected    map[string]float64 `json:"expected_probabilities"`
	Deltas      map[string]float64 `json:"deltas,omitempty"`
	Shots       int                `json:"shots"`
	Error       string             `json:"error,omitempty"`
}

// Report aggregates every case outcome for one circuit.
type Report struct {
	Platform string       `json:"platform"`
	Cases    []CaseResult `json:"cases"`
	Passed   int          `json:"passed"`
	Failed   int          `json:"failed"`
	Total    int          `json:"total"`
}

// RunAll executes every test case in order and aggregates the report.
// Individual case failures (including execution errors) are recorded, not
// propagated; only a completely unusable setup returns an error.
func (r *Runner) RunAll(ctx context.Context, source string, cases []TestCase) (*Report, error) {
	if r.Backend == nil {
		return nil, fmt.Errorf("harness: no backend configured")
	}
	tolerance := r.Tolerance
	if tolerance == 0 {
		tolerance = result.DefaultTolerance
	}

	report := &Report{
		Platform: string(r.Backend.Platform()),
		Cases:    make([]CaseResult, 0, len(cases)),
		Total:    len(cases),
	}

	for _, tc := range cases {
		slog.Debug("running test case", "description", tc.Description, "input_state", tc.InputState)
		cr := r.runCase(ctx, source, tc, tolerance)
		report.Cases = append(report.Cases, cr)
		if cr.Pass {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	return report, nil
}

func (r *Runner) runCase(ctx context.Context, source string, tc TestCase, tolerance float64) CaseResult {
	cr := CaseResult{
		Description: tc.Description,
		InputState:  tc.InputState,
		Expected:    tc.MeasurementProbabilities,
	}

	prepared, err := PrepareCircuit(source, tc.InputState)
	if err != nil {
		cr.Error = err.Error()
		return cr
	}

	adapted := qasm.Adapt(prepared, r.Backend.Platform())

	res, err := r.Backend.Run(ctx, adapted, r.Shots)
	if err != nil {
		cr.Error = err.Error()
		return cr
	}

	// Some runners report joint keys with register separators
	// ("01 11"); only the leading field names the qubits under test.
	collapsed := result.New(collapseSpacedKeys(res.Counts()), res.Metadata())

	cr.Shots = collapsed.TotalShots()
	cr.Actual = collapsed.Probabilities()
	cr.Pass = result.Matches(cr.Actual, tc.MeasurementProbabilities, tolerance)
	if !cr.Pass {
		cr.Deltas = result.Deltas(cr.Actual, tc.MeasurementProbabilities)
	}
	return cr
}

// collapseSpacedKeys re-tallies counts whose keys contain several
// whitespace-separated register fields, keeping the first field.
func collapseSpacedKeys(counts map[string]int) map[string]int {
	out := make(map[string]int, len(counts))
	for key, n := range counts {
		if fields := strings.Fields(key); len(fields) > 1 {
			key = fields[0]
		}
		out[key] += n
	}
	return out
}
