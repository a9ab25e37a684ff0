package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/qbridge/internal/platform"
	"github.com/roach88/qbridge/internal/qasm"
)

// AdaptOptions holds flags for the adapt command.
type AdaptOptions struct {
	*RootOptions
	Platform string
	Output   string
}

// AdaptResult is the JSON payload for the adapt command.
type AdaptResult struct {
	Platform string   `json:"platform"`
	Adapted  string   `json:"adapted"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewAdaptCommand creates the adapt command.
func NewAdaptCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AdaptOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "adapt <qasm-file>",
		Short: "Rewrite a QASM file for a target platform's dialect",
		Long: `Adapt OpenQASM source to a target platform's dialect: version
declaration, include policy, and gate mnemonics. Compatibility warnings
for the original source are printed to stderr.

Examples:
  qbridge adapt circuit.qasm --platform braket
  qbridge adapt circuit.qasm --platform cirq -o circuit_cirq.qasm`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdapt(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Platform, "platform", "p", "", "target platform (qiskit|cirq|braket)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	cmd.MarkFlagRequired("platform")

	return cmd
}

func runAdapt(opts *AdaptOptions, path string, cmd *cobra.Command) error {
	target, err := platform.Parse(opts.Platform)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid platform", err)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read qasm file", err)
	}

	warnings := qasm.Check(string(source))
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), w)
	}

	adapted := qasm.Adapt(string(source), target)

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(adapted), 0o644); err != nil {
			return WrapExitError(ExitCommandError, "write output file", err)
		}
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if formatter.Format == "json" {
		return formatter.Success(AdaptResult{
			Platform: string(target),
			Adapted:  adapted,
			Warnings: warnings,
		})
	}
	if opts.Output == "" {
		fmt.Fprint(cmd.OutOrStdout(), adapted)
		if len(adapted) > 0 && adapted[len(adapted)-1] != '\n' {
			fmt.Fprintln(cmd.OutOrStdout())
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Adapted for %s: %s\n", target, opts.Output)
	}
	return nil
}
