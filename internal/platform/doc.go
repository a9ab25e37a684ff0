// Package platform defines the quantum platform identifiers and the
// per-target OpenQASM dialect policies used throughout qbridge.
//
// This package contains type and policy definitions only. All other
// internal packages import platform; platform imports nothing internal.
// This keeps platform the foundational layer with no circular dependencies.
//
// The policy data is immutable process-wide configuration. There is no
// mutation API, so concurrent readers need no locking.
package platform
