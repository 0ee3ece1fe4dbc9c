package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLocalize(t *testing.T) {
	text := Text{
		"en":    "Copy Constructor",
		"de":    "Kopierkonstruktor",
		"de-CH": "Kopierkonstruktor (CH)",
		"fr":    "",
	}

	tests := []struct {
		name string
		tag  string
		want string
	}{
		{"exact", "de", "Kopierkonstruktor"},
		{"exact region", "de-CH", "Kopierkonstruktor (CH)"},
		{"base language", "de-AT", "Kopierkonstruktor"},
		{"default", "ja", "Copy Constructor"},
		{"empty text falls back", "fr", "Copy Constructor"},
		{"undetermined", "und", "Copy Constructor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := language.MustParse(tt.tag)
			assert.Equal(t, tt.want, Localize(text, tag, "en"))
		})
	}
}

func TestLocalizeIsPure(t *testing.T) {
	text := Text{"en": "a", "de": "b"}
	for range 3 {
		assert.Equal(t, "b", Localize(text, language.German, "en"))
		assert.Equal(t, "a", Localize(text, language.English, "en"))
	}
	assert.Len(t, text, 2)
}

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "en", c.DefaultLocale)
	assert.Len(t, c.Patterns, 8)
	assert.Equal(t, []string{"en", "de"}, c.Locales())

	for _, tag := range []language.Tag{language.English, language.German, language.Japanese} {
		t.Run(tag.String(), func(t *testing.T) {
			defs, err := c.Definitions(tag)
			require.NoError(t, err)
			require.Len(t, defs, 8)
			for _, d := range defs {
				assert.NotEmpty(t, d.Name, d.ID)
				assert.NotEmpty(t, d.Description, d.ID)
				assert.NotEmpty(t, d.Binding, d.ID)
				assert.NotEmpty(t, d.Source, d.ID)
			}
		})
	}
}

func TestDefinitionsFallback(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	de, err := c.Definitions(language.German)
	require.NoError(t, err)
	byID := make(map[string]string)
	descByID := make(map[string]string)
	for _, d := range de {
		byID[d.ID] = d.Name
		descByID[d.ID] = d.Description
	}

	assert.Equal(t, "Kopierkonstruktor", byID["OB02"])
	// OB03 has a German name but only an English description.
	assert.Equal(t, "compareTo mit equals", byID["OB03"])
	assert.Contains(t, descByID["OB03"], "Comparable type")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
		check   func(t *testing.T, c *Catalog)
	}{
		{
			name: "default locale applied",
			doc: `
patterns:
  - id: xx01
    binding: a.b
    category: Style
    name: {en: X}
    description: {en: Y}
`,
			check: func(t *testing.T, c *Catalog) {
				assert.Equal(t, "en", c.DefaultLocale)
				defs, err := c.Definitions(language.English)
				require.NoError(t, err)
				require.Len(t, defs, 1)
				assert.Equal(t, "XX01", defs[0].ID)
				assert.Equal(t, "style", string(defs[0].Category))
			},
		},
		{
			name: "duplicate ids collapse",
			doc: `
patterns:
  - {id: A1, binding: a, category: bug, name: {en: first}, description: {en: d}}
  - {id: A1, binding: b, category: bug, name: {en: second}, description: {en: d}}
`,
			check: func(t *testing.T, c *Catalog) {
				defs, err := c.Definitions(language.English)
				require.NoError(t, err)
				require.Len(t, defs, 1)
				assert.Equal(t, "first", defs[0].Name)
			},
		},
		{
			name: "missing text fails localization",
			doc: `
default_locale: de
patterns:
  - {id: A1, binding: a, category: bug, name: {en: only english}, description: {en: d}}
`,
			check: func(t *testing.T, c *Catalog) {
				_, err := c.Definitions(language.French)
				assert.Error(t, err)
			},
		},
		{
			name:    "missing id",
			doc:     "patterns:\n  - {binding: a}\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			doc:     "patterns: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}
