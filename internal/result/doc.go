// Package result provides the canonical measurement-result model shared
// across quantum platforms.
//
// Three structurally incompatible native shapes feed into one Result:
//
//   - CountsTable: per-experiment bitstring→count maps (batch of one)
//   - LabeledGroups: named measurement events, bits per shot
//   - NativeCounter: counts already aggregated in a counter
//
// The variants are a closed set, one conversion function each, all
// converging on New. A Result is immutable after construction; the
// probability view is derived on demand, never stored.
package result
