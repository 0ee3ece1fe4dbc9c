package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command. Build date and commit are
// printed when known.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display kudos version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "kudos v%s\n", version)
			_, _ = fmt.Fprintln(w, "Positive pattern detection for Java")
			if buildDate != "" && buildDate != "unknown" {
				_, _ = fmt.Fprintf(w, "Built:  %s\n", buildDate)
			}
			if gitCommit != "" && gitCommit != "unknown" {
				_, _ = fmt.Fprintf(w, "Commit: %s\n", gitCommit)
			}
		},
	}
}
