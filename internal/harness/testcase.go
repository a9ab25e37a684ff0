package harness

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaCUE string

// TestCase describes one behavioral check for a circuit: prepare the
// input state, run, and compare measured probabilities against the
// expectation within tolerance.
type TestCase struct {
	InputState               string             `json:"input_state"`
	ExpectedOutput           string             `json:"expected_output"`
	Description              string             `json:"description"`
	MeasurementProbabilities map[string]float64 `json:"measurement_probabilities"`
}

// LoadCases reads a JSON array of test cases from path, validating it
// against the embedded CUE schema before decoding.
func LoadCases(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test cases: %w", err)
	}
	return ParseCases(data)
}

// ParseCases validates and decodes a JSON array of test cases.
func ParseCases(data []byte) ([]TestCase, error) {
	if err := ValidateCases(data); err != nil {
		return nil, err
	}
	var cases []TestCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("decode test cases: %w", err)
	}
	return cases, nil
}

// ValidateCases checks a JSON test-case array against the schema without
// decoding it. Validation errors carry CUE's field-level positions, which
// beats json.Unmarshal's type errors for hand-edited fixture files.
func ValidateCases(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile test-case schema: %w", err)
	}

	expr, err := cuejson.Extract("cases.json", data)
	if err != nil {
		return fmt.Errorf("parse test cases: %w", err)
	}

	val := schema.LookupPath(cue.ParsePath("cases")).Unify(ctx.BuildExpr(expr))
	if err := val.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("test cases do not match schema: %w", err)
	}
	return nil
}

// SaveCases writes test cases as indented JSON, the same layout the
// generator and hand editing produce.
func SaveCases(cases []TestCase, path string) error {
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("encode test cases: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write test cases: %w", err)
	}
	return nil
}
