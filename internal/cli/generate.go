package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/qbridge/internal/fixture"
	"github.com/roach88/qbridge/internal/harness"
	"github.com/roach88/qbridge/internal/qasm"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Output string
	Model  string
	Count  int
}

// GenerateResult is the JSON payload for the generate command.
type GenerateResult struct {
	Output string             `json:"output"`
	Count  int                `json:"count"`
	Cases  []harness.TestCase `json:"cases"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <qasm-file>",
		Short: "Generate behavioral test cases for a circuit via an LLM",
		Long: `Analyze a circuit with a language model and produce a JSON test-case
file covering representative input states. The API key is read from the
QBRIDGE_API_KEY or OPENAI_API_KEY environment variable.

Examples:
  qbridge generate circuit.qasm
  qbridge generate circuit.qasm -o cases.json --count 5`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "test_cases.json", "output file for generated cases")
	cmd.Flags().StringVar(&opts.Model, "model", "", "model to use (default from config)")
	cmd.Flags().IntVar(&opts.Count, "count", 3, "number of test cases to request")

	return cmd
}

func runGenerate(opts *GenerateOptions, path string, cmd *cobra.Command) error {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read qasm file", err)
	}
	source := string(raw)
	numQubits, err := qasm.QubitCount(source)
	if err != nil {
		return WrapExitError(ExitCommandError, "inspect circuit", err)
	}

	model := opts.Model
	if model == "" {
		model = cfg.Fixture.Model
	}
	gen, err := fixture.New(fixture.Config{
		APIKey:  APIKey(),
		BaseURL: cfg.Fixture.BaseURL,
		Model:   model,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "configure generator", err)
	}

	slog.Info("generating test cases", "file", path, "qubits", numQubits, "count", opts.Count)
	cases, err := gen.Generate(cmd.Context(), source, numQubits, opts.Count)
	if err != nil {
		return WrapExitError(ExitFailure, "generate test cases", err)
	}

	if err := harness.SaveCases(cases, opts.Output); err != nil {
		return WrapExitError(ExitCommandError, "write test cases", err)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if formatter.Format == "json" {
		return formatter.Success(GenerateResult{Output: opts.Output, Count: len(cases), Cases: cases})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d test case(s):\n", len(cases))
	for i, tc := range cases {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s -> %s: %s\n", i+1, tc.InputState, tc.ExpectedOutput, tc.Description)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", opts.Output)
	return nil
}
