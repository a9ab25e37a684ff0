package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/qbridge/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Show     string
}

// HistoryEntry is one row of the history listing payload.
type HistoryEntry struct {
	ID          string         `json:"id"`
	Platform    string         `json:"platform"`
	Shots       int            `json:"shots"`
	Fingerprint string         `json:"fingerprint"`
	CreatedAt   string         `json:"created_at"`
	Counts      map[string]int `json:"counts,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded circuit runs",
		Long: `List runs recorded by the run command, newest first. Use --show to
print the full detail of a single run including its adapted source and
measurement counts.

Examples:
  qbridge history
  qbridge history --limit 5
  qbridge history --show 0198c9e2-5f6a-7cde-8f01-23456789abcd`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "history database path (default from config)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list (0 for all)")
	cmd.Flags().StringVar(&opts.Show, "show", "", "show full detail for a single run ID")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if opts.Database == "" {
		opts.Database = cfg.Database
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open history database", err)
	}
	defer st.Close()

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Show != "" {
		return showRun(st, opts.Show, formatter, cmd)
	}

	runs, err := st.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "list runs", err)
	}

	entries := make([]HistoryEntry, 0, len(runs))
	for _, r := range runs {
		entries = append(entries, HistoryEntry{
			ID:          r.ID,
			Platform:    string(r.Platform),
			Shots:       r.Shots,
			Fingerprint: r.Fingerprint,
			CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s  %6d shots  %s\n", e.CreatedAt, e.Platform, e.Shots, e.ID)
	}
	return nil
}

func showRun(st *store.Store, id string, formatter *OutputFormatter, cmd *cobra.Command) error {
	r, err := st.GetRun(cmd.Context(), id)
	if err != nil {
		return WrapExitError(ExitCommandError, "load run", err)
	}

	entry := HistoryEntry{
		ID:          r.ID,
		Platform:    string(r.Platform),
		Shots:       r.Shots,
		Fingerprint: r.Fingerprint,
		CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
		Counts:      r.Result.Counts(),
	}
	if formatter.Format == "json" {
		return formatter.Success(entry)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run:         %s\n", entry.ID)
	fmt.Fprintf(w, "Platform:    %s\n", entry.Platform)
	fmt.Fprintf(w, "Shots:       %d\n", entry.Shots)
	fmt.Fprintf(w, "Fingerprint: %s\n", entry.Fingerprint)
	fmt.Fprintf(w, "Created:     %s\n", entry.CreatedAt)
	fmt.Fprintln(w, "Counts:")
	for _, key := range r.Result.Bitstrings() {
		fmt.Fprintf(w, "  %s: %d\n", key, entry.Counts[key])
	}
	fmt.Fprintln(w, "Adapted source:")
	fmt.Fprintln(w, r.Adapted)
	return nil
}
