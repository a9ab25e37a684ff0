package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bellQASM = `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
creg c[2];
h q[0];
cx q[0], q[1];
barrier q;
measure q -> c;
`

func writeTempQASM(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circuit.qasm")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAdaptCommandBraket(t *testing.T) {
	path := writeTempQASM(t, bellQASM)

	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd := NewAdaptCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{path, "--platform", "braket"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "OPENQASM 3;")
	assert.Contains(t, out, "cnot q[0], q[1];")
	assert.Contains(t, out, `// include "qelib1.inc";  (skipped for braket compatibility)`)

	// Compatibility warnings for the original source land on stderr.
	assert.Contains(t, errBuf.String(), "barrier")
}

func TestAdaptCommandWritesOutputFile(t *testing.T) {
	path := writeTempQASM(t, bellQASM)
	outPath := filepath.Join(t.TempDir(), "adapted.qasm")

	buf := &bytes.Buffer{}
	cmd := NewAdaptCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "-p", "cirq", "-o", outPath})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "// barrier q;  (skipped for cirq compatibility)")
	assert.Contains(t, buf.String(), outPath)
}

func TestAdaptCommandJSON(t *testing.T) {
	path := writeTempQASM(t, bellQASM)

	buf := &bytes.Buffer{}
	cmd := NewAdaptCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "-p", "qiskit"})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "qiskit", data["platform"])
	assert.Contains(t, data["adapted"], "OPENQASM 2.0;")
}

func TestAdaptCommandUnknownPlatform(t *testing.T) {
	path := writeTempQASM(t, bellQASM)

	cmd := NewAdaptCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "-p", "pennylane"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestAdaptCommandMissingFile(t *testing.T) {
	cmd := NewAdaptCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.qasm"), "-p", "qiskit"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
