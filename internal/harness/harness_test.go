package harness

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qbridge/internal/platform"
	"github.com/roach88/qbridge/internal/result"
)

// stubBackend returns canned counts keyed by the preparation the source
// carries, so different input states can produce different outcomes.
type stubBackend struct {
	target    platform.Platform
	counts    map[string]map[string]int // preparation marker -> counts
	fallback  map[string]int
	runErr    error
	lastShots int
	lastSrc   string
}

func (s *stubBackend) Platform() platform.Platform { return s.target }
func (s *stubBackend) Available() bool             { return true }

func (s *stubBackend) Run(_ context.Context, source string, shots int) (*result.Result, error) {
	s.lastShots = shots
	s.lastSrc = source
	if s.runErr != nil {
		return nil, s.runErr
	}
	for marker, counts := range s.counts {
		if strings.Contains(source, marker) {
			return result.New(counts, map[string]string{"platform": string(s.target)}), nil
		}
	}
	return result.New(s.fallback, map[string]string{"platform": string(s.target)}), nil
}

const harnessSource = `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
creg c[2];
h q[0];
cx q[0], q[1];
measure q -> c;`

func TestRunAllPassAndFail(t *testing.T) {
	backend := &stubBackend{
		target: platform.Qiskit,
		counts: map[string]map[string]int{
			// |01⟩ preparation flips q[0]; canned counts make it fail.
			"x q[0];": {"00": 1000},
		},
		fallback: map[string]int{"00": 492, "11": 508},
	}

	cases := []TestCase{
		{
			InputState:               "|00⟩",
			Description:              "bell pair from ground state",
			MeasurementProbabilities: map[string]float64{"00": 0.5, "11": 0.5},
		},
		{
			InputState:               "|01⟩",
			Description:              "flipped input",
			MeasurementProbabilities: map[string]float64{"01": 0.5, "10": 0.5},
		},
	}

	h := &Runner{Backend: backend, Shots: 1000}
	report, err := h.RunAll(context.Background(), harnessSource, cases)
	require.NoError(t, err)

	assert.Equal(t, "qiskit", report.Platform)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)

	require.Len(t, report.Cases, 2)
	assert.True(t, report.Cases[0].Pass)
	assert.Empty(t, report.Cases[0].Deltas)
	assert.False(t, report.Cases[1].Pass)
	assert.NotEmpty(t, report.Cases[1].Deltas)
	assert.Equal(t, 1000, backend.lastShots)
}

func TestRunAllAdaptsForBackendPlatform(t *testing.T) {
	backend := &stubBackend{
		target:   platform.Braket,
		fallback: map[string]int{"00": 500, "11": 500},
	}
	cases := []TestCase{{
		InputState:               "|00⟩",
		Description:              "dialect check",
		MeasurementProbabilities: map[string]float64{"00": 0.5, "11": 0.5},
	}}

	h := &Runner{Backend: backend, Shots: 100}
	_, err := h.RunAll(context.Background(), harnessSource, cases)
	require.NoError(t, err)

	assert.Contains(t, backend.lastSrc, "OPENQASM 3;")
	assert.Contains(t, backend.lastSrc, "cnot q[0], q[1];")
}

func TestRunAllRecordsCaseErrors(t *testing.T) {
	backend := &stubBackend{
		target: platform.Qiskit,
		runErr: fmt.Errorf("sdk exploded"),
	}
	cases := []TestCase{{
		InputState:               "|00⟩",
		Description:              "will error",
		MeasurementProbabilities: map[string]float64{"00": 1.0},
	}}

	h := &Runner{Backend: backend}
	report, err := h.RunAll(context.Background(), harnessSource, cases)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Cases, 1)
	assert.Contains(t, report.Cases[0].Error, "sdk exploded")
	assert.False(t, report.Cases[0].Pass)
}

func TestRunAllNoBackend(t *testing.T) {
	h := &Runner{}
	_, err := h.RunAll(context.Background(), harnessSource, nil)
	assert.Error(t, err)
}

func TestRunAllInvalidInputState(t *testing.T) {
	backend := &stubBackend{target: platform.Cirq, fallback: map[string]int{"0": 1}}
	cases := []TestCase{{
		InputState:               "|+⟩",
		Description:              "unsupported superposition ket",
		MeasurementProbabilities: map[string]float64{"0": 1.0},
	}}

	h := &Runner{Backend: backend}
	report, err := h.RunAll(context.Background(), harnessSource, cases)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.NotEmpty(t, report.Cases[0].Error)
}

func TestCollapseSpacedKeys(t *testing.T) {
	counts := map[string]int{
		"01 1": 3,
		"01 0": 2,
		"11":   5,
	}
	assert.Equal(t, map[string]int{"01": 5, "11": 5}, collapseSpacedKeys(counts))
}
