package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/kudos/internal/cli/config"
	"github.com/leapstack-labs/kudos/internal/cli/output"
	"github.com/leapstack-labs/kudos/internal/cli/testutil"
	"github.com/leapstack-labs/kudos/pkg/pattern"
)

func runPatternsCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewPatternsCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestPatternsCommand_ListAll(t *testing.T) {
	out, err := runPatternsCmd(t)
	require.NoError(t, err)

	assert.Contains(t, out, "# Patterns")
	assert.Contains(t, out, "## Object")
	assert.Contains(t, out, "## Concurrency")
	assert.Contains(t, out, "**OB02** - Copy Constructor")
	testutil.AssertValidMarkdown(t, out)
}

func TestPatternsCommand_FilterByGroup(t *testing.T) {
	out, err := runPatternsCmd(t, "--group", "testing")
	require.NoError(t, err)

	assert.Contains(t, out, "## Testing")
	assert.NotContains(t, out, "## Object")
	assert.NotContains(t, out, "OB01")
}

func TestPatternsCommand_ShowSpecificPattern(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"canonical id", "OB02"},
		{"lowercase id", "ob02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runPatternsCmd(t, tt.id)
			require.NoError(t, err)

			assert.Contains(t, out, "# OB02 - Copy Constructor")
			assert.Contains(t, out, "Effective Java")
			assert.Contains(t, out, "## Notes")
		})
	}
}

func TestPatternsCommand_NotFound(t *testing.T) {
	_, err := runPatternsCmd(t, "INVALID99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPatternsCommand_JSON(t *testing.T) {
	out, err := runPatternsCmd(t, "--format", "json", "--category", "bug")
	require.NoError(t, err)

	var result output.PatternsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "en", result.Locale)
	assert.Equal(t, 3, result.Count)
	for _, p := range result.Patterns {
		assert.Equal(t, "bug", p.Category)
		assert.NotEmpty(t, p.Description)
	}
}

func TestPatternsCommand_ShowJSON(t *testing.T) {
	out, err := runPatternsCmd(t, "-f", "json", "SY01")
	require.NoError(t, err)

	var info output.PatternInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "SY01", info.ID)
	assert.Equal(t, "syntax", info.Group)
}

func TestPatternsCommand_Verbose(t *testing.T) {
	out, err := runPatternsCmd(t, "-V", "--group", "object")
	require.NoError(t, err)
	assert.Contains(t, out, "> Only one copying call per field is recognized.")
}

func TestPatternsText(t *testing.T) {
	defs := []*pattern.Definition{
		{ID: "OB01", Name: "Clone Blueprint", Group: "object", Category: pattern.CategoryBug, Description: "Uses super.clone().", AdditionalInfo: []string{"Cloneable"}},
		{ID: "SY01", Name: "Varargs", Group: "syntax", Category: pattern.CategorySmell, Description: "Trailing varargs."},
	}

	t.Run("list", func(t *testing.T) {
		tr := testutil.NewTestRendererText()
		listPatternsText(tr.Renderer, defs, true)

		out := tr.Output()
		assert.Contains(t, out, "Patterns (2)")
		assert.Contains(t, out, "Object")
		assert.Contains(t, out, "Uses super.clone().")
		assert.Contains(t, out, "kudos patterns <pattern-id>")
	})

	t.Run("show", func(t *testing.T) {
		tr := testutil.NewTestRendererText()
		showPatternText(tr.Renderer, defs[0])

		out := tr.Output()
		assert.Contains(t, out, "OB01 - Clone Blueprint")
		assert.Contains(t, out, "Description")
		assert.Contains(t, out, "- Cloneable")
	})
}
