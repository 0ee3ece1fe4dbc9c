// Package catalog holds the localized catalog of pattern definitions.
//
// The catalog is a YAML document embedded in the binary. Each definition
// carries its text as explicit {locale: text} tables; Localize resolves a
// table for one locale without any shared state.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/kudos/pkg/pattern"
)

//go:embed catalog.yaml
var embedded []byte

// DefaultLocale is used when a catalog does not name one.
const DefaultLocale = "en"

// Text maps locale keys ("en", "de", "de-CH") to text.
type Text map[string]string

// Entry is one catalog definition before localization.
type Entry struct {
	ID          string `yaml:"id"`
	Binding     string `yaml:"binding"`
	Group       string `yaml:"group"`
	Category    string `yaml:"category"`
	Source      string `yaml:"source"`
	Name        Text   `yaml:"name"`
	Description Text   `yaml:"description"`
	Info        []Text `yaml:"info"`
}

// Catalog is a parsed catalog document.
type Catalog struct {
	DefaultLocale string  `yaml:"default_locale"`
	Patterns      []Entry `yaml:"patterns"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if c.DefaultLocale == "" {
		c.DefaultLocale = DefaultLocale
	}
	for i, e := range c.Patterns {
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("parse catalog: pattern %d has no id", i)
		}
	}
	return &c, nil
}

// Localize returns the text for tag. It tries the exact tag, then its base
// language, then the fallback key.
func Localize(text Text, tag language.Tag, fallback string) string {
	if s, ok := text[tag.String()]; ok && s != "" {
		return s
	}
	if base, conf := tag.Base(); conf != language.No {
		if s, ok := text[base.String()]; ok && s != "" {
			return s
		}
	}
	return text[fallback]
}

// Definitions localizes every entry for tag. Entries sharing an ID collapse
// to the first one. Definitions are returned in catalog order.
func (c *Catalog) Definitions(tag language.Tag) ([]*pattern.Definition, error) {
	seen := make(map[string]bool, len(c.Patterns))
	defs := make([]*pattern.Definition, 0, len(c.Patterns))
	for _, e := range c.Patterns {
		id := strings.ToUpper(strings.TrimSpace(e.ID))
		if seen[id] {
			continue
		}
		seen[id] = true

		def := &pattern.Definition{
			ID:          id,
			Name:        Localize(e.Name, tag, c.DefaultLocale),
			Group:       e.Group,
			Description: strings.TrimSpace(Localize(e.Description, tag, c.DefaultLocale)),
			Source:      e.Source,
			Category:    pattern.Category(strings.ToLower(e.Category)),
			Binding:     e.Binding,
		}
		for _, info := range e.Info {
			if s := Localize(info, tag, c.DefaultLocale); s != "" {
				def.AdditionalInfo = append(def.AdditionalInfo, s)
			}
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("localize %s for %s: %w", id, tag, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Locales returns every locale key used by the catalog, sorted, with the
// default locale first.
func (c *Catalog) Locales() []string {
	seen := map[string]bool{c.DefaultLocale: true}
	out := []string{c.DefaultLocale}
	add := func(t Text) {
		for k := range t {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	for _, e := range c.Patterns {
		add(e.Name)
		add(e.Description)
		for _, info := range e.Info {
			add(info)
		}
	}
	slices.Sort(out[1:])
	return out
}
