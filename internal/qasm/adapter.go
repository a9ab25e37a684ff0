package qasm

import (
	"fmt"
	"strings"

	"github.com/roach88/qbridge/internal/gate"
	"github.com/roach88/qbridge/internal/platform"
)

// Adapt rewrites OpenQASM source so the target platform's dialect accepts
// it. The rewrite is two-phase: a per-line pass substitutes version,
// include, barrier, and gate-mnemonic forms in original order, then a
// structural pass inserts any declaration the source never had. The output
// always contains exactly one version declaration and at most one include,
// no matter how many the input carried.
//
// Adapt is idempotent for a fixed target: adapted output classifies to the
// same lines on a second pass (renamed mnemonics are not themselves
// rename candidates, and disabled lines become comments).
func Adapt(source string, target platform.Platform) string {
	pol := platform.PolicyFor(target)
	renames := gate.Renames(target)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines)+2)
	versionDone := false
	includeDone := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Blank lines and comments pass through verbatim.
		if trimmed == "" || commentRe.MatchString(line) {
			out = append(out, line)
			continue
		}

		if barrierRe.MatchString(line) && !pol.SupportsBarrier {
			// Keep the original text visible for traceability instead of
			// silently dropping the instruction.
			out = append(out, disabledLine(line, target))
			continue
		}

		if versionRe.MatchString(line) {
			// Whatever version the source declared, the target's literal
			// wins. Later declarations are dropped: one version line only.
			if !versionDone {
				out = append(out, pol.VersionLiteral)
				versionDone = true
			}
			continue
		}

		if includeRe.MatchString(line) {
			if !includeDone {
				if pol.RequiresInclude {
					out = append(out, line)
				} else {
					out = append(out, disabledLine(line, target))
				}
				includeDone = true
			}
			continue
		}

		out = append(out, renameMnemonic(line, renames))
	}

	// Structural pass: synthesize what the source never declared.
	if !versionDone {
		out = append([]string{pol.VersionLiteral}, out...)
	}
	if !includeDone && pol.RequiresInclude {
		rest := make([]string, 0, len(out)+1)
		rest = append(rest, out[0], platform.StdIncludeLiteral)
		rest = append(rest, out[1:]...)
		out = rest
	}

	return strings.Join(out, "\n")
}

// renameMnemonic substitutes the leading instruction mnemonic when the
// target platform spells the gate differently. Operands are untouched.
func renameMnemonic(line string, renames map[string]string) string {
	if len(renames) == 0 {
		return line
	}
	m := mnemonicRe.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	repl, ok := renames[m[2]]
	if !ok {
		return line
	}
	return m[1] + repl + line[len(m[0]):]
}

func disabledLine(line string, target platform.Platform) string {
	return fmt.Sprintf("// %s  (skipped for %s compatibility)", line, target)
}
