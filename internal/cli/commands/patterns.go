package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/kudos/internal/cli/output"
	"github.com/leapstack-labs/kudos/pkg/pattern"
)

// PatternsOptions holds options for the patterns command.
type PatternsOptions struct {
	Group    string // Filter by group
	Category string // Filter by category: bug, smell, error, style
	Verbose  bool   // Show full documentation
	Format   string // Output format
}

// NewPatternsCommand creates the patterns command.
func NewPatternsCommand() *cobra.Command {
	opts := &PatternsOptions{}
	cmd := &cobra.Command{
		Use:   "patterns [pattern-id]",
		Short: "List the detectable patterns",
		Long: `List every pattern kudos can detect, with its documentation.

Patterns are organized by group (e.g., object, syntax, testing). Names and
descriptions follow --locale and fall back to English where a translation is
missing. Use --verbose to see descriptions and additional notes.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all patterns
  kudos patterns

  # Show details for a specific pattern
  kudos patterns OB02

  # List patterns in the testing group
  kudos patterns --group testing

  # Show full documentation in German
  kudos patterns -V --locale de

  # Output as JSON
  kudos patterns --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showPattern(cmd, args[0], opts)
			}
			return listPatterns(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Filter by category: bug, smell, error, style")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func listPatterns(cmd *cobra.Command, opts *PatternsOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	defs, err := filterPatterns(cmdCtx.Registry.Definitions(), opts)
	if err != nil {
		return err
	}
	locale := cmdCtx.Registry.Locale().String()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.PatternsOutput{Locale: locale, Patterns: patternInfos(defs), Count: len(defs)})
	case output.ModeMarkdown:
		listPatternsMarkdown(r, defs, opts.Verbose)
	default:
		listPatternsText(r, defs, opts.Verbose)
	}
	return nil
}

// filterPatterns keeps the definitions matching the options. Definitions
// arrive sorted by ID; the result is grouped, then sorted by ID.
func filterPatterns(defs []*pattern.Definition, opts *PatternsOptions) ([]*pattern.Definition, error) {
	var category pattern.Category
	if opts.Category != "" {
		c, err := pattern.ParseCategory(opts.Category)
		if err != nil {
			return nil, err
		}
		category = c
	}

	byGroup := make(map[string][]*pattern.Definition)
	for _, d := range defs {
		if opts.Group != "" && !strings.EqualFold(d.Group, opts.Group) {
			continue
		}
		if category != "" && d.Category != category {
			continue
		}
		byGroup[d.Group] = append(byGroup[d.Group], d)
	}

	var filtered []*pattern.Definition
	for _, group := range sortedKeys(byGroup) {
		filtered = append(filtered, byGroup[group]...)
	}
	return filtered, nil
}

func showPattern(cmd *cobra.Command, id string, opts *PatternsOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	def, ok := cmdCtx.Registry.Definition(id)
	if !ok {
		return fmt.Errorf("pattern %q not found", id)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(patternInfos([]*pattern.Definition{def})[0])
	case output.ModeMarkdown:
		showPatternMarkdown(r, def)
	default:
		showPatternText(r, def)
	}
	return nil
}

// listPatternsText outputs patterns in styled text format.
func listPatternsText(r *output.Renderer, defs []*pattern.Definition, verbose bool) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Patterns (%d)", len(defs))))
	r.Println("")

	currentGroup := ""
	for _, d := range defs {
		if d.Group != currentGroup {
			currentGroup = d.Group
			r.Println(styles.Bold.Render("  " + capitalizeFirst(currentGroup)))
		}

		r.Printf("    %s  %s - %s\n",
			styles.ID.Render(d.ID),
			d.Name,
			categoryStyle(styles, d.Category).Render(d.Category.String()),
		)

		if verbose {
			r.Println(styles.Muted.Render("        " + truncateOneLine(d.Description, 100)))
			for _, info := range d.AdditionalInfo {
				r.Println(styles.Muted.Render("        - " + truncateOneLine(info, 96)))
			}
			r.Println("")
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'kudos patterns <pattern-id>' for detailed documentation"))
	r.Println("")
}

// listPatternsMarkdown outputs patterns in markdown format.
func listPatternsMarkdown(r *output.Renderer, defs []*pattern.Definition, verbose bool) {
	r.Println("# Patterns")
	r.Println("")

	currentGroup := ""
	for _, d := range defs {
		if d.Group != currentGroup {
			if currentGroup != "" {
				r.Println("")
			}
			currentGroup = d.Group
			r.Println("## " + capitalizeFirst(currentGroup))
			r.Println("")
		}

		r.Printf("- **%s** - %s (`%s`)\n", d.ID, d.Name, d.Category)
		if verbose {
			r.Println("  " + d.Description)
			for _, info := range d.AdditionalInfo {
				r.Println("  > " + info)
			}
		}
	}

	r.Println("")
}

// showPatternText displays detailed pattern info in text format.
func showPatternText(r *output.Renderer, d *pattern.Definition) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", d.ID, d.Name)))
	r.Println("")

	r.Printf("  %s\n", output.FormatKeyValue("Group", d.Group, output.ModeText, styles))
	r.Printf("  %s\n", output.FormatKeyValue("Category", d.Category.String(), output.ModeText, styles))
	if d.Source != "" {
		r.Printf("  %s\n", output.FormatKeyValue("Source", d.Source, output.ModeText, styles))
	}
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + d.Description)
	r.Println("")

	if len(d.AdditionalInfo) > 0 {
		r.Println(styles.Bold.Render("Notes"))
		for _, info := range d.AdditionalInfo {
			r.Println("  - " + info)
		}
		r.Println("")
	}
}

// showPatternMarkdown displays detailed pattern info in markdown format.
func showPatternMarkdown(r *output.Renderer, d *pattern.Definition) {
	r.Printf("# %s - %s\n\n", d.ID, d.Name)
	r.Printf("**Group:** %s | **Category:** `%s`\n\n", d.Group, d.Category)
	r.Println(d.Description)
	r.Println("")

	if d.Source != "" {
		r.Println(output.FormatKeyValue("Source", d.Source, output.ModeMarkdown, nil))
		r.Println("")
	}

	if len(d.AdditionalInfo) > 0 {
		r.Println("## Notes")
		r.Println("")
		for _, info := range d.AdditionalInfo {
			r.Println("- " + info)
		}
		r.Println("")
	}
}

func patternInfos(defs []*pattern.Definition) []output.PatternInfo {
	infos := make([]output.PatternInfo, 0, len(defs))
	for _, d := range defs {
		infos = append(infos, output.PatternInfo{
			ID:             d.ID,
			Name:           d.Name,
			Group:          d.Group,
			Category:       d.Category.String(),
			Description:    d.Description,
			Source:         d.Source,
			AdditionalInfo: d.AdditionalInfo,
		})
	}
	return infos
}

// Helper functions

func categoryStyle(styles *output.Styles, c pattern.Category) lipgloss.Style {
	switch c {
	case pattern.CategoryBug:
		return styles.Error
	case pattern.CategoryError:
		return styles.Warning
	case pattern.CategorySmell:
		return styles.Info
	default:
		return styles.Muted
	}
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
