package qasm

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrNoQubitRegister is reported when a caller needs qubit widths but the
// source declares no qreg. Callers must not fall back to a zero-qubit
// circuit; the absence has to surface.
var ErrNoQubitRegister = errors.New("qasm: no qreg declaration found")

var (
	versionRe = regexp.MustCompile(`^\s*OPENQASM\s+[0-9.]+\s*;`)
	includeRe = regexp.MustCompile(`include\s+["']qelib1\.inc["']\s*;`)
	barrierRe = regexp.MustCompile(`^\s*barrier\b`)
	qregRe    = regexp.MustCompile(`^\s*qreg\s+([A-Za-z_][A-Za-z0-9_]*)\s*\[\s*([0-9]+)\s*\]\s*;`)
	cregRe    = regexp.MustCompile(`^\s*creg\s+([A-Za-z_][A-Za-z0-9_]*)\s*\[\s*([0-9]+)\s*\]\s*;`)
	commentRe = regexp.MustCompile(`^\s*//`)

	// mnemonicRe captures the leading instruction mnemonic of a statement.
	// Renames apply to this token only, never to operands, so a register
	// that happens to share a gate's name is left alone.
	mnemonicRe = regexp.MustCompile(`^(\s*)([A-Za-z_][A-Za-z0-9_]*)`)
)

// Register is a declared quantum or classical register.
type Register struct {
	Name string
	Size int
}

// QuantumRegisters returns the qreg declarations in source order.
func QuantumRegisters(source string) []Register {
	return scanRegisters(source, qregRe)
}

// ClassicalRegisters returns the creg declarations in source order.
func ClassicalRegisters(source string) []Register {
	return scanRegisters(source, cregRe)
}

func scanRegisters(source string, re *regexp.Regexp) []Register {
	var regs []Register
	for _, line := range strings.Split(source, "\n") {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		size, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		regs = append(regs, Register{Name: m[1], Size: size})
	}
	return regs
}

// QubitCount sums the declared qreg widths.
// A source with no qreg yields ErrNoQubitRegister, never a silent zero.
func QubitCount(source string) (int, error) {
	regs := QuantumRegisters(source)
	if len(regs) == 0 {
		return 0, ErrNoQubitRegister
	}
	total := 0
	for _, r := range regs {
		total += r.Size
	}
	return total, nil
}

// Fingerprint returns a stable hex identifier for source text.
// The text is NFC-normalized first so visually identical documents that
// differ only in Unicode composition hash the same.
func Fingerprint(source string) string {
	sum := sha256.Sum256([]byte(norm.NFC.String(source)))
	return hex.EncodeToString(sum[:])
}
