package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/leapstack-labs/kudos/internal/cli/output"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return fmt.Errorf("output: %w\nHint: set output in kudos.yaml or use --output", err)
	}
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("locale %q is not a valid language tag: %w", c.Locale, err)
		}
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	for _, ext := range c.Extensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("extensions must not contain empty entries")
		}
	}
	return nil
}
