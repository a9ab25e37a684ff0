package gate

import (
	"sort"

	"github.com/roach88/qbridge/internal/platform"
)

// standardGates is the set of gate names assumed portable across every
// supported platform unless the alias table says otherwise.
var standardGates = map[string]bool{
	"x": true, "y": true, "z": true, // Pauli gates
	"h":  true,                // Hadamard
	"cx": true, "cnot": true,  // controlled-not, both spellings
	"s": true, "sdg": true,    // S and S-dagger
	"t": true, "tdg": true,    // T and T-dagger
	"rx": true, "ry": true, "rz": true, // rotations
	"u1": true, "u2": true, "u3": true, // universal gates
	"swap": true,
	"ccx":  true, "toffoli": true,
	"measure": true,
}

// entry is one per-platform resolution for a canonical gate name.
// Unsupported marks "no equivalent on this platform", which is distinct
// from the gate simply having no entry (same name as canonical).
type entry struct {
	Name        string
	Unsupported bool
}

// aliasTable maps canonical gate names to explicit per-platform entries.
// A platform absent from a gate's row falls back to the canonical name.
var aliasTable = map[string]map[platform.Platform]entry{
	"cx": {
		platform.Braket: {Name: "cnot"},
		platform.Qiskit: {Name: "cx"},
	},
	"ccx": {
		platform.Braket: {Name: "ccnot"},
		platform.Qiskit: {Name: "ccx"},
	},
	"id": {
		platform.Braket: {Name: "i"},
		platform.Qiskit: {Name: "id"},
	},
	"barrier": {
		platform.Qiskit: {Name: "barrier"},
		platform.Braket: {Name: "barrier"},
		platform.Cirq:   {Unsupported: true},
	},
}

// Lookup resolves the name gateName goes by on the target platform.
// ok is false only when the gate explicitly has no equivalent there.
// Resolution order: explicit alias entry, then canonical-set passthrough,
// then unknown-gate passthrough.
func Lookup(gateName string, target platform.Platform) (name string, ok bool) {
	if row, found := aliasTable[gateName]; found {
		if e, found := row[target]; found {
			if e.Unsupported {
				return "", false
			}
			return e.Name, true
		}
	}
	// Standard and unknown gates both pass through unchanged. Unknown
	// gates are not rejected: callers that care log them and move on.
	return gateName, true
}

// IsSupported reports whether gateName has any usable form on the platform.
func IsSupported(gateName string, target platform.Platform) bool {
	_, ok := Lookup(gateName, target)
	return ok
}

// Renames returns the canonical→alias substitutions the adapter must apply
// for the target platform. Only entries whose alias differs from the
// canonical spelling are included.
func Renames(target platform.Platform) map[string]string {
	renames := make(map[string]string)
	for canonical, row := range aliasTable {
		if e, found := row[target]; found && !e.Unsupported && e.Name != canonical {
			renames[canonical] = e.Name
		}
	}
	return renames
}

// SupportedGateSet returns the sorted union of the standard set (filtered
// by support) and every alias-table gate that resolves on the platform.
// The union is computed fresh on each call; the table is static data, so
// there is nothing worth caching.
func SupportedGateSet(target platform.Platform) []string {
	set := make(map[string]bool)
	for g := range standardGates {
		if IsSupported(g, target) {
			set[g] = true
		}
	}
	for g, row := range aliasTable {
		if e, found := row[target]; found && !e.Unsupported {
			set[g] = true
		}
	}
	names := make([]string, 0, len(set))
	for g := range set {
		names = append(names, g)
	}
	sort.Strings(names)
	return names
}
