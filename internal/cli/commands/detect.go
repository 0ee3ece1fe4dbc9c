package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/kudos/internal/cli/output"
	"github.com/leapstack-labs/kudos/internal/engine"
	"github.com/leapstack-labs/kudos/internal/state"
	"github.com/leapstack-labs/kudos/pkg/pattern"
)

// DetectOptions holds options for the detect command.
type DetectOptions struct {
	Format  string   // Output format: text, markdown, json
	Disable []string // Pattern IDs to skip
	Pattern []string // Detect only these pattern IDs
	Jobs    int      // Files processed concurrently
	Strict  bool     // Fail when any diagnostic is reported
	Record  bool     // Store the run in the history database
	DB      string   // History database path override
	Source  []string // Files or directories indexed for name resolution only
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}
	cmd := &cobra.Command{
		Use:   "detect [path...]",
		Short: "Detect positive patterns in Java sources",
		Long: `Analyze Java source files and report every recognized positive pattern.

Each path may be a .java file or a directory, which is searched recursively.
Hidden directories and paths matching an exclude glob from kudos.yaml are
skipped. Files that fail to parse are reported as diagnostics and do not stop
the run.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Detect patterns in the current directory
  kudos detect

  # Detect patterns in one source tree
  kudos detect ./src/main/java

  # Output as JSON
  kudos detect --format json

  # Skip specific patterns
  kudos detect --disable SY01,SY02

  # Only look for copy constructors, with German descriptions
  kudos detect --pattern OB02 --locale de

  # Resolve supertypes from a library tree without reporting on it
  kudos detect ./app --sourcepath ./lib

  # Keep the run in the project history
  kudos detect --record`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Pattern IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Pattern, "pattern", nil, "Detect only these pattern IDs")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Files processed concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when a file cannot be parsed or a detector fails")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "Record the run in the history database")
	cmd.Flags().StringVar(&opts.DB, "db", "", "History database path (default: .kudos/history.db in the project root)")
	cmd.Flags().StringSliceVar(&opts.Source, "sourcepath", nil, "Java files or directories used to resolve types, not reported on")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	if err := checkPatternIDs(cmdCtx, opts.Disable, opts.Pattern); err != nil {
		return err
	}

	eng := cmdCtx.NewEngine(opts.Disable, opts.Pattern, opts.Jobs)

	paths, err := collectSources(eng, args)
	if err != nil {
		return err
	}

	if len(opts.Source) > 0 {
		refs, err := collectSources(eng, opts.Source)
		if err != nil {
			return err
		}
		if err := eng.IndexSources(cmd.Context(), refs); err != nil {
			return err
		}
	}

	report, err := eng.Run(cmd.Context(), paths)
	if err != nil {
		return err
	}

	locale := cmdCtx.Registry.Locale().String()
	renderDetectResults(r, report, locale)

	if opts.Record || cmdCtx.Cfg.History.Record {
		if err := recordRun(cmd, cmdCtx, opts.DB, report, locale); err != nil {
			return err
		}
	}

	if (opts.Strict || cmdCtx.Cfg.Strict) && len(report.Diagnostics) > 0 {
		return fmt.Errorf("%d diagnostics reported", len(report.Diagnostics))
	}
	return nil
}

// recordRun stores the report's summary in the history database.
func recordRun(cmd *cobra.Command, cmdCtx *CommandContext, dbPath string, report *engine.Report, locale string) error {
	store, err := cmdCtx.OpenHistory(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run := runFromReport(report, locale, cmdCtx.Cfg.ProjectRoot)
	if err := store.RecordRun(cmd.Context(), run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	cmdCtx.Logger.Debug("recorded run", "id", run.ID, "db", store.Path())
	return nil
}

func runFromReport(report *engine.Report, locale, root string) *state.Run {
	run := &state.Run{
		ID:          report.RunID,
		Root:        root,
		Locale:      locale,
		Files:       report.Files,
		Instances:   len(report.Instances),
		Diagnostics: len(report.Diagnostics),
		Duration:    report.Duration,
		StartedAt:   time.Now().UTC().Add(-report.Duration),
	}
	counts := countByPattern(report.Instances)
	for _, id := range sortedKeys(counts) {
		run.Patterns = append(run.Patterns, state.PatternCount{PatternID: id, Count: counts[id].n})
	}
	return run
}

// checkPatternIDs rejects pattern IDs that are not cataloged.
func checkPatternIDs(cmdCtx *CommandContext, lists ...[]string) error {
	for _, ids := range lists {
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := cmdCtx.Registry.Definition(id); !ok {
				return fmt.Errorf("pattern %q not found", id)
			}
		}
	}
	return nil
}

// collectSources expands directory arguments into the source files below
// them. File arguments are kept as given so the engine validates them.
func collectSources(eng *engine.Engine, args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			if !seen[arg] {
				seen[arg] = true
				paths = append(paths, arg)
			}
			continue
		}

		found, err := eng.Discover(arg)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			if !seen[path] {
				seen[path] = true
				paths = append(paths, path)
			}
		}
	}
	return paths, nil
}

func renderDetectResults(r *output.Renderer, report *engine.Report, locale string) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(detectJSON(report, locale))
		return
	}

	styles := r.Styles()
	markdown := r.EffectiveMode() == output.ModeMarkdown

	if markdown {
		r.Println("# Detected Patterns")
		r.Println("")
	}

	currentPath := ""
	for _, inst := range report.Instances {
		if inst.Path != currentPath {
			if currentPath != "" {
				r.Println("")
			}
			currentPath = inst.Path
			if markdown {
				r.Printf("## %s\n\n", inst.Path)
			} else {
				r.Println(styles.Path.Render(inst.Path))
			}
		}

		loc := inst.Pos.String()
		if markdown {
			r.Printf("- `%s` **%s** %s (%s)\n", loc, inst.PatternID(), inst.Definition.Name, inst.TypeName)
			continue
		}
		r.Printf("  %s  %s  %s  %s\n",
			styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
			styles.ID.Render(inst.PatternID()),
			inst.Definition.Name,
			styles.Muted.Render(inst.TypeName),
		)
	}
	if currentPath != "" {
		r.Println("")
	}

	if len(report.Diagnostics) > 0 {
		if markdown {
			r.Println("## Diagnostics")
			r.Println("")
			for _, d := range report.Diagnostics {
				r.Printf("- %s\n", d.String())
			}
			r.Println("")
		} else {
			for _, d := range report.Diagnostics {
				r.Warning(d.String())
			}
		}
	}

	if len(report.Instances) == 0 {
		r.Success(fmt.Sprintf("No patterns found in %d files", report.Files))
		return
	}

	counts := countByPattern(report.Instances)
	var rows [][]string
	for _, id := range sortedKeys(counts) {
		rows = append(rows, []string{id, counts[id].name, fmt.Sprintf("%d", counts[id].n)})
	}
	r.Table([]string{"Pattern", "Name", "Count"}, rows)

	r.Printf("Summary: %d instances of %d patterns in %d files", len(report.Instances), len(counts), report.Files)
	if len(report.Diagnostics) > 0 {
		r.Printf(" (%d diagnostics)", len(report.Diagnostics))
	}
	r.Println("")
}

type patternCount struct {
	name string
	n    int
}

func countByPattern(instances []pattern.Instance) map[string]*patternCount {
	counts := make(map[string]*patternCount)
	for _, inst := range instances {
		c, ok := counts[inst.PatternID()]
		if !ok {
			c = &patternCount{name: inst.Definition.Name}
			counts[inst.PatternID()] = c
		}
		c.n++
	}
	return counts
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func detectJSON(report *engine.Report, locale string) output.DetectOutput {
	out := output.DetectOutput{
		RunID:       report.RunID,
		Locale:      locale,
		Instances:   []output.PatternInstance{},
		Diagnostics: []output.DetectDiagnostic{},
		Summary: output.DetectSummary{
			Files:       report.Files,
			Instances:   len(report.Instances),
			Diagnostics: len(report.Diagnostics),
			ByPattern:   make(map[string]int),
			DurationMS:  report.Duration.Milliseconds(),
		},
	}

	for _, inst := range report.Instances {
		out.Summary.ByPattern[inst.PatternID()]++
		out.Instances = append(out.Instances, output.PatternInstance{
			PatternID: inst.PatternID(),
			Name:      inst.Definition.Name,
			Category:  inst.Definition.Category.String(),
			TypeName:  inst.TypeName,
			Path:      inst.Path,
			Line:      inst.Pos.Line,
			Column:    inst.Pos.Column,
			EndLine:   inst.End.Line,
			EndColumn: inst.End.Column,
			Snippet:   strings.TrimSpace(inst.Snippet),
		})
	}

	for _, d := range report.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, output.DetectDiagnostic{
			Kind:      string(d.Kind),
			Path:      d.Path,
			PatternID: d.PatternID,
			Line:      d.Pos.Line,
			Column:    d.Pos.Column,
			Message:   d.Message,
		})
	}
	return out
}
