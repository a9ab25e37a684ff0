package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/qbridge/internal/platform"
	"github.com/roach88/qbridge/internal/qasm"
	"github.com/roach88/qbridge/internal/runner"
	"github.com/roach88/qbridge/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Platform string
	Shots    int
	Database string
	NoSave   bool
}

// RunResult is the JSON payload for the run command.
type RunResult struct {
	RunID         string             `json:"run_id,omitempty"`
	Platform      string             `json:"platform"`
	Shots         int                `json:"shots"`
	Counts        map[string]int     `json:"counts"`
	Probabilities map[string]float64 `json:"probabilities"`
	Warnings      []string           `json:"warnings,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <qasm-file>",
		Short: "Adapt and execute a QASM circuit on a quantum platform",
		Long: `Adapt a circuit for the target platform, execute it through the
configured external runner, normalize the native result, and record the
run in the history database.

With --platform auto (the default), the first available platform in
preference order (qiskit, braket, cirq) is used.

Examples:
  qbridge run circuit.qasm
  qbridge run circuit.qasm --platform braket --shots 2000
  qbridge run circuit.qasm --no-save --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Platform, "platform", "p", "", "target platform (qiskit|cirq|braket|auto)")
	cmd.Flags().IntVar(&opts.Shots, "shots", 0, "number of shots (default from config)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "history database path (default from config)")
	cmd.Flags().BoolVar(&opts.NoSave, "no-save", false, "skip recording the run")

	return cmd
}

func runRun(opts *RunOptions, path string, cmd *cobra.Command) error {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if opts.Platform == "" {
		opts.Platform = cfg.Platform
	}
	if opts.Shots == 0 {
		opts.Shots = cfg.Shots
	}
	if opts.Database == "" {
		opts.Database = cfg.Database
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read qasm file", err)
	}

	backends, err := cfg.Backends()
	if err != nil {
		return WrapExitError(ExitCommandError, "configure backends", err)
	}

	backend, err := selectBackend(backends, opts.Platform)
	if err != nil {
		return WrapExitError(ExitCommandError, "select platform", err)
	}
	target := backend.Platform()
	slog.Info("running circuit", "file", path, "platform", target, "shots", opts.Shots)

	warnings := qasm.Check(string(source))
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), w)
	}

	adapted := qasm.Adapt(string(source), target)

	res, err := backend.Run(cmd.Context(), adapted, opts.Shots)
	if err != nil {
		return WrapExitError(ExitFailure, "execute circuit", err)
	}
	slog.Info("circuit complete", "platform", target, "shots", res.TotalShots(), "outcomes", len(res.Counts()))

	out := RunResult{
		Platform:      string(target),
		Shots:         res.TotalShots(),
		Counts:        res.Counts(),
		Probabilities: res.Probabilities(),
		Warnings:      warnings,
	}

	if !opts.NoSave {
		id, err := saveRun(cmd.Context(), opts.Database, store.Run{
			Platform: target,
			Shots:    opts.Shots,
			Source:   string(source),
			Adapted:  adapted,
			Result:   res,
		})
		if err != nil {
			return WrapExitError(ExitCommandError, "record run", err)
		}
		out.RunID = id
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if formatter.Format == "json" {
		return formatter.Success(out)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Platform: %s (%d shots)\n", out.Platform, out.Shots)
	fmt.Fprintln(cmd.OutOrStdout(), "Measurement counts:")
	for _, key := range res.Bitstrings() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d (%.3f)\n", key, out.Counts[key], out.Probabilities[key])
	}
	if out.RunID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded as run %s\n", out.RunID)
	}
	return nil
}

// selectBackend resolves the requested platform name, with "auto" (or
// empty) walking the preference order for the first available backend.
func selectBackend(backends map[platform.Platform]runner.Backend, name string) (runner.Backend, error) {
	if name == "" || name == "auto" {
		b, err := runner.AutoSelect(backends)
		if err != nil {
			return nil, err
		}
		slog.Info("auto-selected platform", "platform", b.Platform())
		return b, nil
	}

	target, err := platform.Parse(name)
	if err != nil {
		return nil, err
	}
	b, ok := backends[target]
	if !ok {
		return nil, fmt.Errorf("no runner configured for platform %s", target)
	}
	if !b.Available() {
		return nil, fmt.Errorf("platform %s is not available: runner not found", target)
	}
	return b, nil
}

func saveRun(ctx context.Context, dbPath string, run store.Run) (string, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer st.Close()

	run.ID = store.NewRunID()
	run.Fingerprint = qasm.Fingerprint(run.Source)
	run.CreatedAt = time.Now()
	if err := st.SaveRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}
