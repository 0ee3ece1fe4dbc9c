// Package config provides configuration management for the kudos CLI.
//
// Values are layered, lowest precedence first: built-in defaults, the
// project's kudos.yaml, KUDOS_* environment variables, then command-line
// flags that were explicitly set.
package config

import "path/filepath"

// Config holds all CLI configuration options.
type Config struct {
	Locale       string         `koanf:"locale"`
	OutputFormat string         `koanf:"output"`
	Verbose      bool           `koanf:"verbose"`
	Jobs         int            `koanf:"jobs"`
	Strict       bool           `koanf:"strict"`
	Exclude      []string       `koanf:"exclude"`
	Extensions   []string       `koanf:"extensions"`
	Patterns     PatternsConfig `koanf:"patterns"`
	History      HistoryConfig  `koanf:"history"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when there is none.
	ProjectRoot string `koanf:"-"`
}

// PatternsConfig selects which patterns are detected.
type PatternsConfig struct {
	Disabled []string `koanf:"disabled"`
	Only     []string `koanf:"only"`
}

// HistoryConfig controls the run history database.
type HistoryConfig struct {
	// Path of the SQLite database, relative to the project root unless absolute
	Path string `koanf:"path"`
	// Record stores every detect run
	Record bool `koanf:"record"`
}

// DBPath returns the history database path resolved against the project root.
func (c *Config) DBPath() string {
	path := c.History.Path
	if path == "" {
		path = DefaultHistoryPath
	}
	if path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectRoot, path)
}

// Default configuration values.
const (
	DefaultLocale = ""     // catalog default
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultJobs   = 0      // GOMAXPROCS

	DefaultHistoryPath = ".kudos/history.db"
)

// DefaultExtensions are the source file extensions detected by default.
var DefaultExtensions = []string{".java"}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		Locale:       DefaultLocale,
		OutputFormat: DefaultOutput,
		Jobs:         DefaultJobs,
		Extensions:   append([]string(nil), DefaultExtensions...),
		History:      HistoryConfig{Path: DefaultHistoryPath},
	}
}
