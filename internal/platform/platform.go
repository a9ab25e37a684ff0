package platform

import (
	"fmt"
	"strings"
)

// Platform identifies a supported quantum SDK target.
type Platform string

const (
	Qiskit Platform = "qiskit"
	Cirq   Platform = "cirq"
	Braket Platform = "braket"
)

// All lists the supported platforms in auto-selection preference order.
var All = []Platform{Qiskit, Braket, Cirq}

// OpenQASM declaration literals shared by the adapter and its callers.
const (
	Version2Literal   = "OPENQASM 2.0;"
	Version3Literal   = "OPENQASM 3;"
	StdIncludeLiteral = `include "qelib1.inc";`
)

// Parse converts a user-supplied platform name to a Platform.
func Parse(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case Qiskit:
		return Qiskit, nil
	case Cirq:
		return Cirq, nil
	case Braket:
		return Braket, nil
	}
	return "", fmt.Errorf("unknown platform %q: must be one of qiskit, cirq, braket", s)
}

// Policy describes how a target's OpenQASM dialect deviates from the
// portable OpenQASM 2.0 baseline.
type Policy struct {
	// VersionLiteral is the exact version declaration the target expects.
	VersionLiteral string

	// RequiresInclude is true when the target needs the standard gate
	// library include. Targets without it treat an existing include as a
	// removable comment rather than an error.
	RequiresInclude bool

	// SupportsBarrier is false when barrier instructions must be disabled
	// before the target will accept the source.
	SupportsBarrier bool
}

var policies = map[Platform]Policy{
	Qiskit: {
		VersionLiteral:  Version2Literal,
		RequiresInclude: true,
		SupportsBarrier: true,
	},
	Cirq: {
		VersionLiteral:  Version2Literal,
		RequiresInclude: true,
		SupportsBarrier: false,
	},
	Braket: {
		VersionLiteral:  Version3Literal,
		RequiresInclude: false,
		SupportsBarrier: true,
	},
}

// PolicyFor returns the dialect policy for p.
// Unknown platforms get the portable OpenQASM 2.0 baseline.
func PolicyFor(p Platform) Policy {
	if pol, ok := policies[p]; ok {
		return pol
	}
	return Policy{
		VersionLiteral:  Version2Literal,
		RequiresInclude: true,
		SupportsBarrier: true,
	}
}
