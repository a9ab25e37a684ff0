package harness

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qbridge/internal/qasm"
)

func TestParseKet(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"|01⟩", "01"},
		{"|01>", "01"},
		{"01", "01"},
		{" |110⟩ ", "110"},
		{"|⟩", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKet(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKetRejectsNonBits(t *testing.T) {
	for _, in := range []string{"|+⟩", "|0x⟩", "abc"} {
		_, err := ParseKet(in)
		assert.Error(t, err, in)
	}
}

func TestPreparationLinesLittleEndian(t *testing.T) {
	// State "01" sets qubit 0: the rightmost bit is the low qubit.
	lines, err := PreparationLines("01", "q", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"x q[0];"}, lines)

	lines, err = PreparationLines("10", "q", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"x q[1];"}, lines)

	lines, err = PreparationLines("11", "q", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"x q[0];", "x q[1];"}, lines)
}

func TestPreparationLinesAllZeros(t *testing.T) {
	lines, err := PreparationLines("00", "q", 2)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestPreparationLinesTooWide(t *testing.T) {
	_, err := PreparationLines("101", "q", 2)
	assert.Error(t, err)
}

const prepSource = `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
creg c[2];
h q[0];
cx q[0], q[1];
measure q -> c;`

func TestPrepareCircuitSplicesAfterRegisters(t *testing.T) {
	out, err := PrepareCircuit(prepSource, "|01⟩")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 4)
	assert.Equal(t, "creg c[2];", lines[3])
	assert.Equal(t, "x q[0];", lines[4])
	assert.Equal(t, "h q[0];", lines[5])
}

func TestPrepareCircuitZeroStateIsUnchanged(t *testing.T) {
	out, err := PrepareCircuit(prepSource, "|00⟩")
	require.NoError(t, err)
	assert.Equal(t, prepSource, out)
}

func TestPrepareCircuitUsesDeclaredRegisterName(t *testing.T) {
	source := "OPENQASM 2.0;\nqreg qubits[2];\nh qubits[0];"
	out, err := PrepareCircuit(source, "|11⟩")
	require.NoError(t, err)
	assert.Contains(t, out, "x qubits[0];")
	assert.Contains(t, out, "x qubits[1];")
}

func TestPrepareCircuitNoRegister(t *testing.T) {
	_, err := PrepareCircuit("OPENQASM 2.0;\nh q[0];", "|1⟩")
	assert.ErrorIs(t, err, qasm.ErrNoQubitRegister)
}

func TestPrepareCircuitInvalidKet(t *testing.T) {
	_, err := PrepareCircuit(prepSource, "|+⟩")
	assert.Error(t, err)
}
