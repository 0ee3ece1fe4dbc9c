package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/kudos/internal/cli/config"
	"github.com/leapstack-labs/kudos/pkg/pattern"
)

func TestNewDetectCommand(t *testing.T) {
	cmd := NewDetectCommand()

	assert.Equal(t, "detect [path...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"format", "disable", "pattern", "jobs", "strict", "record", "db"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewPatternsCommand(t *testing.T) {
	cmd := NewPatternsCommand()

	assert.Equal(t, "patterns [pattern-id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"group", "category", "verbose", "format"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "V", cmd.Flags().Lookup("verbose").Shorthand)
}

func TestCommandContext_NewEngine(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewDetectCommand()
	cmdCtx, err := NewCommandContext(cmd, "json")
	require.NoError(t, err)
	assert.Equal(t, "en", cmdCtx.Registry.Locale().String())

	cmdCtx.Cfg.Patterns.Disabled = []string{"OB01"}
	eng := cmdCtx.NewEngine([]string{"SY01"}, nil, 2)
	require.NotNil(t, eng)
	assert.Same(t, cmdCtx.Registry, eng.Registry())
}

func TestCommandContext_InvalidFormat(t *testing.T) {
	config.ResetConfig()
	_, err := NewCommandContext(NewDetectCommand(), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestFilterPatterns(t *testing.T) {
	config.ResetConfig()
	cmdCtx, err := NewCommandContext(NewPatternsCommand(), "")
	require.NoError(t, err)
	defs := cmdCtx.Registry.Definitions()

	tests := []struct {
		name    string
		opts    PatternsOptions
		wantIDs []string
		wantErr bool
	}{
		{
			name:    "all grouped",
			wantIDs: []string{"CC01", "OB01", "OB02", "OB03", "SY01", "SY02", "TS01", "TS02"},
		},
		{
			name:    "group",
			opts:    PatternsOptions{Group: "Object"},
			wantIDs: []string{"OB01", "OB02", "OB03"},
		},
		{
			name:    "category",
			opts:    PatternsOptions{Category: "bug"},
			wantIDs: []string{"OB01", "OB03", "SY02"},
		},
		{
			name:    "group and category",
			opts:    PatternsOptions{Group: "testing", Category: "smell"},
			wantIDs: []string{"TS01", "TS02"},
		},
		{
			name:    "no match",
			opts:    PatternsOptions{Group: "nothing"},
			wantIDs: nil,
		},
		{
			name:    "unknown category",
			opts:    PatternsOptions{Category: "fatal"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filterPatterns(defs, &tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			var ids []string
			for _, d := range got {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "Object", capitalizeFirst("object"))
	assert.Equal(t, "", capitalizeFirst(""))
	assert.Equal(t, "a b c", truncateOneLine("a\n  b\tc", 20))
	assert.Equal(t, "abcdefg...", truncateOneLine("abcdefghijklmnop", 10))
	assert.Equal(t, []string{"a", "b"}, sortedKeys(map[string]int{"b": 1, "a": 2}))

	counts := countByPattern([]pattern.Instance{
		{Definition: &pattern.Definition{ID: "SY01", Name: "Varargs"}},
		{Definition: &pattern.Definition{ID: "SY01", Name: "Varargs"}},
		{Definition: &pattern.Definition{ID: "OB01", Name: "Clone"}},
	})
	require.Len(t, counts, 2)
	assert.Equal(t, 2, counts["SY01"].n)
	assert.Equal(t, "Clone", counts["OB01"].name)
}
