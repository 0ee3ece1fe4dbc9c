package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/kudos/internal/cli/config"
	"github.com/leapstack-labs/kudos/internal/cli/output"
	"github.com/leapstack-labs/kudos/internal/cli/testutil"
	"github.com/leapstack-labs/kudos/internal/engine"
	"github.com/leapstack-labs/kudos/pkg/pattern"
)

func runHistoryCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewHistoryCommand()
	cmd.SilenceUsage = true
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// recordDetect runs detect over a fresh test project, recording into db.
func recordDetect(t *testing.T, db string, extra ...string) output.DetectOutput {
	t.Helper()
	root := testutil.SetupTestProject(t)
	args := append([]string{"--format", "json", "--record", "--db", db}, extra...)
	out, _, err := runDetectCmd(t, append(args, root)...)
	require.NoError(t, err)
	return decodeDetect(t, out)
}

func TestHistoryCommand_Metadata(t *testing.T) {
	cmd := NewHistoryCommand()
	assert.Equal(t, "history [run-id]", cmd.Use)
	for _, flag := range []string{"limit", "db", "format"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "n", cmd.Flags().Lookup("limit").Shorthand)
}

func TestHistoryCommand_NoDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing", "history.db")

	out, err := runHistoryCmd(t, "--db", db, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded")
	assert.NoFileExists(t, db, "listing does not create the database")

	out, err = runHistoryCmd(t, "--db", db, "--format", "json")
	require.NoError(t, err)
	var history output.HistoryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &history))
	assert.Equal(t, 0, history.Count)
	assert.NotNil(t, history.Runs)

	_, err = runHistoryCmd(t, "--db", db, "latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no runs recorded")
}

func TestHistoryCommand_ListAndShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	first := recordDetect(t, db)
	second := recordDetect(t, db, "--pattern", "OB01")

	t.Run("list json", func(t *testing.T) {
		out, err := runHistoryCmd(t, "--db", db, "--format", "json")
		require.NoError(t, err)

		var history output.HistoryOutput
		require.NoError(t, json.Unmarshal([]byte(out), &history), out)
		require.Equal(t, 2, history.Count)
		assert.ElementsMatch(t, []string{first.RunID, second.RunID},
			[]string{history.Runs[0].ID, history.Runs[1].ID})
		assert.Nil(t, history.Runs[0].ByPattern, "listings omit pattern counts")
	})

	t.Run("limit", func(t *testing.T) {
		out, err := runHistoryCmd(t, "--db", db, "--format", "json", "-n", "1")
		require.NoError(t, err)

		var history output.HistoryOutput
		require.NoError(t, json.Unmarshal([]byte(out), &history), out)
		assert.Equal(t, 1, history.Count)
	})

	t.Run("list markdown", func(t *testing.T) {
		out, err := runHistoryCmd(t, "--db", db, "--format", "markdown")
		require.NoError(t, err)
		assert.Contains(t, out, "# Run History")
		assert.Contains(t, out, "| Run")
		assert.Contains(t, out, first.RunID[:8])
		testutil.AssertNoANSI(t, out)
		testutil.AssertValidMarkdown(t, out)
	})

	t.Run("show by prefix", func(t *testing.T) {
		out, err := runHistoryCmd(t, "--db", db, "--format", "json", first.RunID[:12])
		require.NoError(t, err)

		var run output.RunInfo
		require.NoError(t, json.Unmarshal([]byte(out), &run), out)
		assert.Equal(t, first.RunID, run.ID)
		assert.Equal(t, "en", run.Locale)
		assert.Equal(t, 3, run.Files)
		assert.Equal(t, first.Summary.ByPattern, run.ByPattern)
	})

	t.Run("show markdown", func(t *testing.T) {
		out, err := runHistoryCmd(t, "--db", db, "--format", "markdown", second.RunID)
		require.NoError(t, err)
		assert.Contains(t, out, "# Run "+second.RunID)
		assert.Contains(t, out, "- **Instances:** 1")
		assert.Contains(t, out, "Clone Blueprint")
		assert.NotContains(t, out, "SY01")
		testutil.AssertValidMarkdown(t, out)
	})

	t.Run("unknown run", func(t *testing.T) {
		_, err := runHistoryCmd(t, "--db", db, "ffffffff-none")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "run not found")
	})
}

func TestHistoryCommand_TextOutput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	recordDetect(t, db)

	out, err := runHistoryCmd(t, "--db", db, "--format", "text", "latest")
	require.NoError(t, err)
	assert.Contains(t, out, "Run ")
	assert.Contains(t, out, "Instances: 3")
	assert.Contains(t, out, "OB01")
}

func TestRunFromReport(t *testing.T) {
	ob01 := &pattern.Definition{ID: "OB01", Name: "Clone Blueprint"}
	sy01 := &pattern.Definition{ID: "SY01", Name: "Varargs"}
	report := &engine.Report{
		RunID:     "run-1",
		Files:     4,
		Instances: []pattern.Instance{{Definition: sy01}, {Definition: ob01}, {Definition: sy01}},
		Diagnostics: []engine.Diagnostic{
			{Kind: engine.KindParse, Path: "Broken.java", Message: "syntax error"},
		},
		Duration: 250 * time.Millisecond,
	}

	run := runFromReport(report, "de", "/src")
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, "/src", run.Root)
	assert.Equal(t, "de", run.Locale)
	assert.Equal(t, 4, run.Files)
	assert.Equal(t, 3, run.Instances)
	assert.Equal(t, 1, run.Diagnostics)
	assert.Equal(t, 250*time.Millisecond, run.Duration)
	assert.False(t, run.StartedAt.IsZero())
	require.Len(t, run.Patterns, 2)
	assert.Equal(t, "OB01", run.Patterns[0].PatternID)
	assert.Equal(t, 1, run.Patterns[0].Count)
	assert.Equal(t, "SY01", run.Patterns[1].PatternID)
	assert.Equal(t, 2, run.Patterns[1].Count)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "7c9e6679", shortID("7c9e6679-7425-40de-944b-e07fc1f90ae7"))
	assert.Equal(t, "abc", shortID("abc"))
}
