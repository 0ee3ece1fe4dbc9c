package pattern

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/kudos/pkg/token"
)

// Category names the negative pattern a positive pattern substitutes for.
type Category string

// Pattern categories.
const (
	CategoryBug   Category = "bug"
	CategorySmell Category = "smell"
	CategoryError Category = "error"
	CategoryStyle Category = "style"
)

// ParseCategory parses a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryBug, CategorySmell, CategoryError, CategoryStyle:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

func (c Category) String() string { return string(c) }

// Definition is a cataloged positive pattern with locale-resolved text.
type Definition struct {
	ID             string   `json:"id"`               // canonical identifier, e.g. "OB01"
	Name           string   `json:"name"`             // localized display name
	Group          string   `json:"group"`            // e.g. "object", "syntax", "testing"
	Description    string   `json:"description"`      // localized description
	Source         string   `json:"source,omitempty"` // citation of the canonical source
	Category       Category `json:"category"`
	AdditionalInfo []string `json:"additional_info,omitempty"`
	Binding        string   `json:"binding"` // detector identifier, e.g. "object.clone_blueprint"
}

// Validate checks the invariants of a localized definition.
func (d *Definition) Validate() error {
	switch {
	case d.ID == "":
		return fmt.Errorf("definition has no id")
	case d.Binding == "":
		return fmt.Errorf("definition %s has no binding", d.ID)
	case strings.TrimSpace(d.Name) == "":
		return fmt.Errorf("definition %s has no name", d.ID)
	case strings.TrimSpace(d.Description) == "":
		return fmt.Errorf("definition %s has no description", d.ID)
	}
	if _, err := ParseCategory(string(d.Category)); err != nil {
		return fmt.Errorf("definition %s: %w", d.ID, err)
	}
	return nil
}

// Instance is one located occurrence of a pattern.
type Instance struct {
	Definition *Definition
	TypeName   string         // qualified name of the enclosing type
	Path       string         // source file
	Pos        token.Position // start of the matched construct
	End        token.Position // optional end of the matched construct
	Snippet    string         // optional first source line of the construct
}

// PatternID returns the ID of the matched definition.
func (i Instance) PatternID() string {
	if i.Definition == nil {
		return ""
	}
	return i.Definition.ID
}

// Validate checks that the instance references a definition and carries a
// 1-based position.
func (i Instance) Validate() error {
	if i.Definition == nil {
		return fmt.Errorf("instance at %s:%s has no definition", i.Path, i.Pos)
	}
	if !i.Pos.IsValid() {
		return fmt.Errorf("instance of %s in %s has invalid position %s", i.Definition.ID, i.Path, i.Pos)
	}
	return nil
}

func (i Instance) String() string {
	return fmt.Sprintf("%s:%d:%d: %s %s", i.Path, i.Pos.Line, i.Pos.Column, i.PatternID(), i.TypeName)
}
