// Package store provides SQLite-backed history for circuit executions.
//
// One row is recorded per run: the platform, shot count, original and
// adapted source, a fingerprint of the original source, and the
// normalized counts as canonical JSON. Canonical serialization keeps
// rows byte-comparable: two runs with identical counts store identical
// text.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// All list queries carry a deterministic ORDER BY so output is stable
// across runs.
package store
