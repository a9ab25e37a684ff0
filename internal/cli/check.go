package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/qbridge/internal/qasm"
)

// CheckResult is the JSON payload for the check command.
type CheckResult struct {
	File     string   `json:"file"`
	Warnings []string `json:"warnings"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <qasm-file>",
		Short: "Scan a QASM file for cross-platform compatibility issues",
		Long: `Scan OpenQASM source for constructs known to be problematic on at
least one platform. Warnings are advisory only; the exit code is 0
either way.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read qasm file", err)
	}

	warnings := qasm.Check(string(source))

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if formatter.Format == "json" {
		return formatter.Success(CheckResult{File: path, Warnings: warnings})
	}

	if len(warnings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cross-platform compatibility issues found.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cross-platform compatibility issues:")
	for _, w := range warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", w)
	}
	return nil
}
