// Package harness runs behavioral test cases against a circuit on a
// quantum backend.
//
// A test case names an input basis state and the measurement
// probabilities the circuit should produce from it. The harness prepares
// the state textually (X gates spliced after the register declarations),
// adapts the source for the backend's platform, executes it, and compares
// measured probabilities against the expectation within a statistical
// tolerance.
//
// Test-case files are JSON arrays validated against an embedded CUE
// schema before anything executes.
package harness
