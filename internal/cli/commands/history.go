package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/kudos/internal/cli/output"
	"github.com/leapstack-labs/kudos/internal/state"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit  int    // Maximum runs listed
	DB     string // History database path override
	Format string // Output format: text, markdown, json
}

// shortIDLen is the run ID prefix shown in listings.
const shortIDLen = 8

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded detection runs",
		Long: `List detection runs recorded with 'kudos detect --record', or show one run
with its instance counts per pattern.

A run may be named by any unique prefix of its ID, or by "latest".`,
		Example: `  # List the last 20 runs
  kudos history

  # Show the most recent run
  kudos history latest

  # Show a run by ID prefix as JSON
  kudos history 7c9e6679 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showRun(cmd, args[0], opts)
			}
			return listRuns(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "History database path (default: .kudos/history.db in the project root)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// openExistingHistory opens the history database, or returns nil when it
// has not been created yet.
func openExistingHistory(cmdCtx *CommandContext, path string) (*state.SQLiteStore, error) {
	if path == "" {
		path = cmdCtx.Cfg.DBPath()
	}
	if path != ":memory:" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
	}
	return cmdCtx.OpenHistory(path)
}

func listRuns(cmd *cobra.Command, opts *HistoryOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	store, err := openExistingHistory(cmdCtx, opts.DB)
	if err != nil {
		return err
	}

	var runs []*state.Run
	if store != nil {
		defer func() { _ = store.Close() }()
		if runs, err = store.ListRuns(cmd.Context(), opts.Limit); err != nil {
			return err
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := output.HistoryOutput{Runs: make([]output.RunInfo, 0, len(runs)), Count: len(runs)}
		for _, run := range runs {
			out.Runs = append(out.Runs, runInfo(run))
		}
		return r.JSON(out)
	}

	if len(runs) == 0 {
		r.Println("No runs recorded. Use 'kudos detect --record' to record one.")
		return nil
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("# Run History")
		r.Println("")
	} else {
		r.Println("")
		r.Println(r.Styles().Header1.Render(fmt.Sprintf("Run History (%d)", len(runs))))
		r.Println("")
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			formatStarted(run.StartedAt),
			fmt.Sprintf("%d", run.Files),
			fmt.Sprintf("%d", run.Instances),
			fmt.Sprintf("%d", run.Diagnostics),
			run.Duration.String(),
		})
	}
	r.Table([]string{"Run", "Started", "Files", "Instances", "Diagnostics", "Duration"}, rows)
	return nil
}

func showRun(cmd *cobra.Command, id string, opts *HistoryOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	store, err := openExistingHistory(cmdCtx, opts.DB)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("no runs recorded")
	}
	defer func() { _ = store.Close() }()

	var run *state.Run
	if strings.EqualFold(id, "latest") {
		run, err = store.GetLatestRun(cmd.Context())
		if err == nil && run == nil {
			err = fmt.Errorf("no runs recorded")
		}
	} else {
		run, err = store.GetRun(cmd.Context(), id)
	}
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(runInfo(run))
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	mode := r.EffectiveMode()
	styles := r.Styles()

	if markdown {
		r.Printf("# Run %s\n\n", run.ID)
	} else {
		r.Println("")
		r.Println(styles.Header1.Render("Run " + run.ID))
		r.Println("")
	}

	fields := [][2]string{
		{"Started", formatStarted(run.StartedAt)},
		{"Root", run.Root},
		{"Locale", run.Locale},
		{"Files", fmt.Sprintf("%d", run.Files)},
		{"Instances", fmt.Sprintf("%d", run.Instances)},
		{"Diagnostics", fmt.Sprintf("%d", run.Diagnostics)},
		{"Duration", run.Duration.String()},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if markdown {
			r.Printf("- %s\n", output.FormatKeyValue(f[0], f[1], mode, styles))
		} else {
			r.Printf("  %s\n", output.FormatKeyValue(f[0], f[1], mode, styles))
		}
	}
	r.Println("")

	if len(run.Patterns) == 0 {
		r.Println("No patterns found in this run.")
		return nil
	}

	rows := make([][]string, 0, len(run.Patterns))
	for _, pc := range run.Patterns {
		name := ""
		if def, ok := cmdCtx.Registry.Definition(pc.PatternID); ok {
			name = def.Name
		}
		rows = append(rows, []string{pc.PatternID, name, fmt.Sprintf("%d", pc.Count)})
	}
	r.Table([]string{"Pattern", "Name", "Count"}, rows)
	return nil
}

func runInfo(run *state.Run) output.RunInfo {
	info := output.RunInfo{
		ID:          run.ID,
		Root:        run.Root,
		Locale:      run.Locale,
		StartedAt:   run.StartedAt.UTC().Format(time.RFC3339),
		Files:       run.Files,
		Instances:   run.Instances,
		Diagnostics: run.Diagnostics,
		DurationMS:  run.Duration.Milliseconds(),
	}
	if len(run.Patterns) > 0 {
		info.ByPattern = make(map[string]int, len(run.Patterns))
		for _, pc := range run.Patterns {
			info.ByPattern[pc.PatternID] = pc.Count
		}
	}
	return info
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func formatStarted(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
