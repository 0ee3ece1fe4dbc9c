package pattern

import "strings"

// Config controls which patterns are detected.
type Config struct {
	// Disabled contains pattern IDs to skip
	Disabled map[string]bool

	// Only restricts detection to these pattern IDs when non-empty
	Only map[string]bool
}

// NewConfig creates a default configuration with all patterns enabled.
func NewConfig() *Config {
	return &Config{
		Disabled: make(map[string]bool),
		Only:     make(map[string]bool),
	}
}

// IsDisabled returns true if the pattern should be skipped.
func (c *Config) IsDisabled(id string) bool {
	if c == nil {
		return false
	}
	id = strings.ToUpper(id)
	if c.Disabled[id] {
		return true
	}
	return len(c.Only) > 0 && !c.Only[id]
}

// Disable disables patterns by ID.
func (c *Config) Disable(ids ...string) *Config {
	for _, id := range ids {
		if id = strings.ToUpper(strings.TrimSpace(id)); id != "" {
			c.Disabled[id] = true
		}
	}
	return c
}

// Restrict limits detection to the given pattern IDs.
func (c *Config) Restrict(ids ...string) *Config {
	for _, id := range ids {
		if id = strings.ToUpper(strings.TrimSpace(id)); id != "" {
			c.Only[id] = true
		}
	}
	return c
}
