// Package fixture synthesizes test-case files for a circuit by prompting
// a chat-completion model with its OpenQASM source.
//
// Generated cases go through the same CUE schema validation as
// hand-written ones before they are accepted; model output that fails to
// parse or validate is rejected, never repaired.
package fixture
