package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/kudos/internal/cli/config"
	"github.com/leapstack-labs/kudos/internal/cli/output"
	"github.com/leapstack-labs/kudos/internal/cli/testutil"
)

// execute runs the root command in dir with args.
func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"detect", "patterns", "history", "version", "completion"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	for _, flag := range []string{"config", "locale", "output", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCommand_Version(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "kudos v"+Version)
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "positive patterns")
	assert.Contains(t, out, "detect")
}

func TestRootCommand_DetectLocale(t *testing.T) {
	root := testutil.SetupTestProject(t)

	out, _, err := execute(t, root, "detect", "--output", "json", "--locale", "de")
	require.NoError(t, err)

	var result output.DetectOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.Equal(t, "de", result.Locale)
	require.NotEmpty(t, result.Instances)
	assert.Equal(t, "OB01", result.Instances[0].PatternID)
	assert.Equal(t, "Clone-Vorlage", result.Instances[0].Name)
}

func TestRootCommand_ConfigFile(t *testing.T) {
	root := testutil.SetupTestProject(t)
	testutil.WriteFile(t, root, "kudos.yaml", `output: json
exclude:
  - Log.java
`)

	out, errOut, err := execute(t, root, "detect", "-v")
	require.NoError(t, err)

	var result output.DetectOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.Equal(t, 2, result.Summary.Files)
	require.Len(t, result.Instances, 1)
	assert.Equal(t, "OB01", result.Instances[0].PatternID)
	assert.Contains(t, errOut, "using config file")
}

func TestRootCommand_ConfigDisabledPatterns(t *testing.T) {
	root := testutil.SetupTestProject(t)
	testutil.WriteFile(t, root, "kudos.yaml", "patterns:\n  disabled: [ob01]\n")

	out, _, err := execute(t, root, "detect", "-o", "json", "--disable", "SY01")
	require.NoError(t, err)

	var result output.DetectOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	require.Len(t, result.Instances, 1)
	assert.Equal(t, "SY02", result.Instances[0].PatternID)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "kudos.yaml", "output: yaml\n")

	_, _, err := execute(t, dir, "patterns")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRootCommand_InvalidLocale(t *testing.T) {
	_, _, err := execute(t, t.TempDir(), "patterns", "--locale", "not a tag!")
	require.Error(t, err)
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := execute(t, t.TempDir(), "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "kudos")
		})
	}

	_, _, err := execute(t, t.TempDir(), "completion", "tcsh")
	require.Error(t, err)
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, config.DefaultOutput, GetConfig(ctx).OutputFormat)
	assert.NotNil(t, GetRenderer(ctx))

	cfg := &config.Config{Locale: "de"}
	ctx = context.WithValue(ctx, configKey{}, cfg)
	assert.Same(t, cfg, GetConfig(ctx))

	r := output.NewRendererWithTTY(new(bytes.Buffer), new(bytes.Buffer), false, output.ModeJSON)
	ctx = context.WithValue(ctx, rendererKey{}, r)
	assert.Same(t, r, GetRenderer(ctx))
}

func TestRootCommand_SkipsHiddenAndExcluded(t *testing.T) {
	root := testutil.SetupTestProject(t)
	testutil.WriteFile(t, root, "generated/Gen.java", testutil.LogSource)
	testutil.WriteFile(t, root, "kudos.yaml", "exclude: [generated]\n")

	out, _, err := execute(t, root, "detect", "-o", "json", filepath.Join(root, "src"), root)
	require.NoError(t, err)

	var result output.DetectOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.Equal(t, 3, result.Summary.Files, "overlapping arguments are deduplicated")
}

func TestRootCommand_RecordHistory(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	testutil.WriteFile(t, dir, "kudos.yaml", "history:\n  record: true\n")

	_, _, err := execute(t, dir, "detect", "-o", "json")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ".kudos", "history.db"))

	out, _, err := execute(t, dir, "history", "-o", "json")
	require.NoError(t, err)
	var history output.HistoryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &history), out)
	require.Equal(t, 1, history.Count)
	assert.Equal(t, 3, history.Runs[0].Files)
	assert.Equal(t, 3, history.Runs[0].Instances)

	out, _, err = execute(t, dir, "history", "latest", "-o", "json")
	require.NoError(t, err)
	var run output.RunInfo
	require.NoError(t, json.Unmarshal([]byte(out), &run), out)
	assert.Equal(t, history.Runs[0].ID, run.ID)
	assert.Equal(t, map[string]int{"OB01": 1, "SY01": 1, "SY02": 1}, run.ByPattern)
}
