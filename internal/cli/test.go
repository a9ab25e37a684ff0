package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/qbridge/internal/harness"
	"github.com/roach88/qbridge/internal/result"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Platform  string
	Shots     int
	Tolerance float64
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <qasm-file> <cases-file>",
		Short: "Run behavioral test cases against a circuit",
		Long: `Run a JSON test-case file against a circuit. Each case prepares its
input state, executes the adapted circuit, and compares measured
probabilities against the expectation within tolerance.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (invalid paths, no platform available, etc.)

Examples:
  qbridge test circuit.qasm test_cases.json
  qbridge test circuit.qasm test_cases.json --platform qiskit --tolerance 0.05`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Platform, "platform", "p", "", "target platform (qiskit|cirq|braket|auto)")
	cmd.Flags().IntVar(&opts.Shots, "shots", 0, "number of shots per case (default from config)")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", result.DefaultTolerance, "probability comparison tolerance")

	return cmd
}

func runTest(opts *TestOptions, qasmPath, casesPath string, cmd *cobra.Command) error {
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

	source, err := os.ReadFile(qasmPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "read qasm file", err)
	}

	cases, err := harness.LoadCases(casesPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load test cases", err)
	}

	backends, err := cfg.Backends()
	if err != nil {
		return WrapExitError(ExitCommandError, "configure backends", err)
	}
	backend, err := selectBackend(backends, opts.Platform)
	if err != nil {
		return WrapExitError(ExitCommandError, "select platform", err)
	}

	h := &harness.Runner{
		Backend:   backend,
		Shots:     opts.Shots,
		Tolerance: opts.Tolerance,
	}
	report, err := h.RunAll(cmd.Context(), string(source), cases)
	if err != nil {
		return WrapExitError(ExitCommandError, "run test cases", err)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if formatter.Format == "json" {
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		printReport(cmd, report)
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d test cases failed", report.Failed, report.Total))
	}
	return nil
}

func printReport(cmd *cobra.Command, report *harness.Report) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Running %d test case(s) on %s...\n", report.Total, report.Platform)

	for i, cr := range report.Cases {
		fmt.Fprintf(w, "\nTest Case %d: %s\n", i+1, cr.Description)
		fmt.Fprintf(w, "Input State: %s\n", cr.InputState)
		if cr.Error != "" {
			fmt.Fprintf(w, "Error: %s\n", cr.Error)
			continue
		}
		status := "PASS"
		if !cr.Pass {
			status = "FAIL"
		}
		fmt.Fprintf(w, "Result: %s (%d shots)\n", status, cr.Shots)
		printProbabilities(w, "Actual", cr.Actual)
		printProbabilities(w, "Expected", cr.Expected)
	}

	fmt.Fprintf(w, "\nTest Summary:\n")
	fmt.Fprintf(w, "Total Tests: %d\n", report.Total)
	fmt.Fprintf(w, "Passed: %d\n", report.Passed)
	fmt.Fprintf(w, "Failed: %d\n", report.Failed)
}

func printProbabilities(w io.Writer, label string, probs map[string]float64) {
	fmt.Fprintf(w, "%s Probabilities:\n", label)
	keys := make([]string, 0, len(probs))
	for k := range probs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  |%s⟩: %.3f\n", k, probs[k])
	}
}
