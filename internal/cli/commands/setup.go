package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/kudos/internal/cli/config"
	"github.com/leapstack-labs/kudos/internal/cli/output"
	"github.com/leapstack-labs/kudos/internal/engine"
	"github.com/leapstack-labs/kudos/internal/state"
	"github.com/leapstack-labs/kudos/pkg/pattern/registry"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Registry *registry.Registry
	Renderer *output.Renderer
}

// NewCommandContext loads the pattern registry for the configured locale and
// creates the renderer. A non-empty format overrides the configured output.
func NewCommandContext(cmd *cobra.Command, format string) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	reg, err := registry.Load(cfg.Locale, registry.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	r, err := newRenderer(cmd, cfg, format)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Registry: reg,
		Renderer: r,
	}, nil
}

// NewEngine creates a detection engine from the context's registry and
// configuration, extended by command-line options.
func (c *CommandContext) NewEngine(disabled, only []string, jobs int) *engine.Engine {
	if jobs <= 0 {
		jobs = c.Cfg.Jobs
	}
	return engine.New(c.Registry, engine.Config{
		Disabled:   append(append([]string(nil), c.Cfg.Patterns.Disabled...), disabled...),
		Only:       append(append([]string(nil), c.Cfg.Patterns.Only...), only...),
		Extensions: c.Cfg.Extensions,
		Excludes:   c.Cfg.Exclude,
		Jobs:       jobs,
		Logger:     c.Logger,
	})
}

// OpenHistory opens and migrates the history database. A non-empty path
// overrides the configured one.
func (c *CommandContext) OpenHistory(path string) (*state.SQLiteStore, error) {
	if path == "" {
		path = c.Cfg.DBPath()
	}
	store, err := state.OpenHistory(path, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open history %s: %w", path, err)
	}
	return store, nil
}

// Helper functions shared across commands

// getConfig returns the current configuration, or the defaults when the
// command runs without the root command having loaded one.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

func newRenderer(cmd *cobra.Command, cfg *config.Config, format string) (*output.Renderer, error) {
	name := cfg.OutputFormat
	if format != "" {
		name = format
	}
	mode, err := output.ParseMode(name)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode), nil
}
