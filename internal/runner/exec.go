package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/roach88/qbridge/internal/platform"
	"github.com/roach88/qbridge/internal/result"
)

// ExecBackend drives one platform through an external runner command.
// The adapted source goes to the command's stdin; the shot count is
// appended as "--shots N"; the native result envelope comes back as JSON
// on stdout.
type ExecBackend struct {
	target  platform.Platform
	command []string
}

// NewExecBackend builds a backend for target using the given argv.
func NewExecBackend(target platform.Platform, command []string) (*ExecBackend, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("runner for %s: empty command", target)
	}
	return &ExecBackend{target: target, command: command}, nil
}

func (b *ExecBackend) Platform() platform.Platform { return b.target }

// Available probes for the runner executable on PATH (or as a direct
// path). It says nothing about whether the SDK behind it works; a broken
// SDK surfaces as a Run error instead.
func (b *ExecBackend) Available() bool {
	_, err := exec.LookPath(b.command[0])
	return err == nil
}

// Run executes the source and normalizes whatever shape the platform's
// runner printed.
func (b *ExecBackend) Run(ctx context.Context, source string, shots int) (*result.Result, error) {
	args := append(append([]string{}, b.command[1:]...), "--shots", strconv.Itoa(shots))
	cmd := exec.CommandContext(ctx, b.command[0], args...)
	cmd.Stdin = strings.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("invoking platform runner", "platform", b.target, "command", b.command[0], "shots", shots)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("runner for %s failed: %w (stderr: %s)",
			b.target, err, strings.TrimSpace(stderr.String()))
	}

	return DecodeEnvelope(b.target, stdout.Bytes())
}

// envelope mirrors the JSON each SDK runner emits. Exactly one field is
// expected per platform; the others stay nil.
type envelope struct {
	// Experiments is the counts-table shape (qiskit runners).
	Experiments []map[string]int `json:"experiments"`

	// Measurements is the labeled-measurement-groups shape (cirq
	// runners): group name → shots × bits.
	Measurements map[string][][]int `json:"measurements"`

	// MeasurementCounts is the native-counter shape (braket runners).
	MeasurementCounts map[string]int `json:"measurement_counts"`
}

// DecodeEnvelope picks the native shape the platform is expected to emit
// out of raw and normalizes it. A missing shape is reported as a
// ShapeError naming what was expected and what the envelope actually
// carried, so callers can retry with a different entry point.
func DecodeEnvelope(target platform.Platform, raw []byte) (*result.Result, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode %s runner output: %w", target, err)
	}

	metadata := map[string]string{"platform": string(target)}

	switch target {
	case platform.Qiskit:
		if env.Experiments == nil {
			return nil, shapeError("experiments", &env)
		}
		return result.FromCountsTable(env.Experiments, metadata), nil
	case platform.Cirq:
		if env.Measurements == nil {
			return nil, shapeError("measurements", &env)
		}
		return result.FromLabeledGroups(env.Measurements, metadata)
	case platform.Braket:
		if env.MeasurementCounts == nil {
			return nil, shapeError("measurement_counts", &env)
		}
		return result.FromNativeCounter(env.MeasurementCounts, metadata), nil
	}
	return nil, fmt.Errorf("no envelope decoder for platform %q", target)
}

func shapeError(expected string, env *envelope) error {
	var found []string
	if env.Experiments != nil {
		found = append(found, "experiments")
	}
	if env.Measurements != nil {
		found = append(found, "measurements")
	}
	if env.MeasurementCounts != nil {
		found = append(found, "measurement_counts")
	}
	foundDesc := "none of the known shapes"
	if len(found) > 0 {
		foundDesc = strings.Join(found, ", ")
	}
	return &result.ShapeError{Expected: expected, Found: foundDesc}
}
