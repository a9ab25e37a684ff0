package qasm

import "strings"

// Check scans QASM source for constructs known to be problematic on at
// least one platform. The result is an ordered list of human-readable
// warnings in rule-declaration order. Checking is advisory only: it never
// blocks adaptation or execution, and the rules are not mutually
// exclusive.
func Check(source string) []string {
	var warnings []string

	if strings.Contains(source, "barrier") {
		warnings = append(warnings, "Warning: 'barrier' is not supported on cirq")
	}
	if strings.Contains(source, "OPENQASM 3") {
		warnings = append(warnings, "Warning: OpenQASM 3 is not fully supported by all platforms")
	}
	if strings.Contains(source, "gate ") {
		warnings = append(warnings, "Warning: custom gate definitions may not be portable across platforms")
	}

	return warnings
}
