package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		buildDate string
		gitCommit string
		wantOut   []string
		notOut    []string
	}{
		{
			name:      "release build",
			version:   "1.2.3",
			buildDate: "2026-01-02",
			gitCommit: "abc1234",
			wantOut:   []string{"kudos v1.2.3", "Java", "Built:  2026-01-02", "Commit: abc1234"},
		},
		{
			name:      "unknown build info",
			version:   "0.1.0",
			buildDate: "unknown",
			gitCommit: "unknown",
			wantOut:   []string{"kudos v0.1.0"},
			notOut:    []string{"Built:", "Commit:"},
		},
		{
			name:    "dev version",
			version: "dev",
			wantOut: []string{"kudos vdev"},
			notOut:  []string{"Built:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.version, tt.buildDate, tt.gitCommit)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{})

			require.NoError(t, cmd.Execute())

			out := buf.String()
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notOut {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand("test", "", "")

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Long, "Long should not be empty")
}
