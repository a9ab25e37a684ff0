package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingCasesJSON = `[
  {
    "input_state": "|00⟩",
    "expected_output": "(|00⟩ + |11⟩)/√2",
    "description": "Bell state generation test",
    "measurement_probabilities": {"00": 0.5, "11": 0.5}
  }
]`

const failingCasesJSON = `[
  {
    "input_state": "|00⟩",
    "expected_output": "|01⟩",
    "description": "Expectation that cannot hold",
    "measurement_probabilities": {"01": 1.0}
  }
]`

func writeCasesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTestCommandAllPass(t *testing.T) {
	runnerPath := writeFakeRunner(t, `{"experiments": [{"00": 49, "11": 51}]}`)
	cfgPath := writeRunConfig(t, runnerPath, filepath.Join(t.TempDir(), "runs.db"))
	qasmPath := writeTempQASM(t, bellQASM)
	casesPath := writeCasesFile(t, passingCasesJSON)

	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text", ConfigPath: cfgPath})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{qasmPath, casesPath})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Running 1 test case(s) on qiskit...")
	assert.Contains(t, out, "Result: PASS (100 shots)")
	assert.Contains(t, out, "Passed: 1")
	assert.Contains(t, out, "Failed: 0")
}

func TestTestCommandFailureSetsExitCode(t *testing.T) {
	runnerPath := writeFakeRunner(t, `{"experiments": [{"00": 49, "11": 51}]}`)
	cfgPath := writeRunConfig(t, runnerPath, filepath.Join(t.TempDir(), "runs.db"))
	qasmPath := writeTempQASM(t, bellQASM)
	casesPath := writeCasesFile(t, failingCasesJSON)

	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text", ConfigPath: cfgPath})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{qasmPath, casesPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Result: FAIL")
	assert.Contains(t, buf.String(), "Failed: 1")
}

func TestTestCommandInvalidCasesFile(t *testing.T) {
	runnerPath := writeFakeRunner(t, `{"experiments": [{"0": 1}]}`)
	cfgPath := writeRunConfig(t, runnerPath, filepath.Join(t.TempDir(), "runs.db"))
	qasmPath := writeTempQASM(t, bellQASM)
	casesPath := writeCasesFile(t, `[{"input_state": "|0⟩"}]`)

	cmd := NewTestCommand(&RootOptions{Format: "text", ConfigPath: cfgPath})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{qasmPath, casesPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandCustomTolerance(t *testing.T) {
	// 0.49/0.51 misses 0.5 by 0.01; a 0.005 tolerance turns it into a
	// failure.
	runnerPath := writeFakeRunner(t, `{"experiments": [{"00": 49, "11": 51}]}`)
	cfgPath := writeRunConfig(t, runnerPath, filepath.Join(t.TempDir(), "runs.db"))
	qasmPath := writeTempQASM(t, bellQASM)
	casesPath := writeCasesFile(t, passingCasesJSON)

	cmd := NewTestCommand(&RootOptions{Format: "text", ConfigPath: cfgPath})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{qasmPath, casesPath, "--tolerance", "0.005"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
