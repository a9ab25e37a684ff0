package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/qbridge/internal/gate"
	"github.com/roach88/qbridge/internal/platform"
)

// GatesResult is the JSON payload for the gates command.
type GatesResult struct {
	Platform string   `json:"platform"`
	Gates    []string `json:"gates"`
}

// NewGatesCommand creates the gates command.
func NewGatesCommand(rootOpts *RootOptions) *cobra.Command {
	var platformName string

	cmd := &cobra.Command{
		Use:           "gates",
		Short:         "List the gate set a platform supports",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := platform.Parse(platformName)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid platform", err)
			}

			gates := gate.SupportedGateSet(target)

			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			if formatter.Format == "json" {
				return formatter.Success(GatesResult{Platform: string(target), Gates: gates})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Gates supported on %s:\n", target)
			for _, g := range gates {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", g)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&platformName, "platform", "p", "", "target platform (qiskit|cirq|braket)")
	cmd.MarkFlagRequired("platform")

	return cmd
}
