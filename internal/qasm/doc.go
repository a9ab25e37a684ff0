// Package qasm implements line-oriented OpenQASM dialect adaptation and
// cross-platform compatibility checking.
//
// This is deliberately not an OpenQASM parser. Each physical line is
// classified independently (version declaration, include, barrier,
// gate invocation, blank/comment, other) and rewritten in place. That is
// all the supported platforms need: their dialects differ only in the
// version literal, the include policy, and a handful of gate mnemonics.
//
// All functions are pure transformations of their input text and are safe
// to call concurrently.
package qasm
