// Package gate holds the static registry of canonical gate names, their
// per-platform aliases, and per-platform support flags.
//
// The registry is package-level immutable data loaded at process start.
// Unknown gates resolve to themselves (fail-open passthrough): the table
// adapts known incompatibilities, it does not reject vendor extensions.
package gate
