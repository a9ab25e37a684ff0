package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/qbridge/internal/qasm"
)

// ParseKet strips ket notation ("|01⟩") down to its bit content. Bare bit
// strings are accepted too; anything other than 0/1 after stripping is an
// error.
func ParseKet(ket string) (string, error) {
	bits := strings.NewReplacer("|", "", "⟩", "", ">", "").Replace(strings.TrimSpace(ket))
	for _, r := range bits {
		if r != '0' && r != '1' {
			return "", fmt.Errorf("invalid input state %q: %q is not a bit", ket, r)
		}
	}
	return bits, nil
}

// PreparationLines returns the X-gate statements that force a register's
// qubits into the given basis state. Bit i of the reversed state string
// controls qubit i, matching little-endian register order: state "01"
// sets reg[0].
func PreparationLines(bits, register string, numQubits int) ([]string, error) {
	if len(bits) > numQubits {
		return nil, fmt.Errorf("input state %q needs %d qubits, circuit has %d", bits, len(bits), numQubits)
	}
	var lines []string
	for i := 0; i < len(bits); i++ {
		if bits[len(bits)-1-i] == '1' {
			lines = append(lines, fmt.Sprintf("x %s[%d];", register, i))
		}
	}
	return lines, nil
}

// PrepareCircuit splices input-state preparation into the circuit under
// test, right after its register declarations. The circuit must declare a
// qubit register; qasm.ErrNoQubitRegister surfaces otherwise.
func PrepareCircuit(source, ket string) (string, error) {
	regs := qasm.QuantumRegisters(source)
	if len(regs) == 0 {
		return "", qasm.ErrNoQubitRegister
	}
	numQubits := 0
	for _, r := range regs {
		numQubits += r.Size
	}

	bits, err := ParseKet(ket)
	if err != nil {
		return "", err
	}

	// Preparation targets the first declared register, which is where
	// the low qubits live.
	prep, err := PreparationLines(bits, regs[0].Name, numQubits)
	if err != nil {
		return "", err
	}
	if len(prep) == 0 {
		return source, nil
	}

	lines := strings.Split(source, "\n")
	insertAt := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "qreg") || strings.HasPrefix(trimmed, "creg") {
			insertAt = i + 1
		}
	}

	out := make([]string, 0, len(lines)+len(prep))
	out = append(out, lines[:insertAt]...)
	out = append(out, prep...)
	out = append(out, lines[insertAt:]...)
	return strings.Join(out, "\n"), nil
}
