package engine

import (
	"fmt"

	"github.com/leapstack-labs/kudos/pkg/token"
)

// Kind classifies a diagnostic.
type Kind string

// Diagnostic kinds.
const (
	KindParse    Kind = "parse"    // source file could not be parsed
	KindDetector Kind = "detector" // a detector failed on one file
	KindIO       Kind = "io"       // source file could not be read
)

// Diagnostic is a non-fatal problem met while detecting. Diagnostics never
// abort a run; they are reported next to the instances.
type Diagnostic struct {
	Kind      Kind           `json:"kind"`
	Path      string         `json:"path"`
	PatternID string         `json:"pattern,omitempty"`
	Pos       token.Position `json:"pos"`
	Message   string         `json:"message"`
}

func (d Diagnostic) String() string {
	loc := d.Path
	if d.Pos.IsValid() {
		loc = fmt.Sprintf("%s:%s", d.Path, d.Pos)
	}
	if d.PatternID != "" {
		return fmt.Sprintf("%s: %s: %s: %s", loc, d.Kind, d.PatternID, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", loc, d.Kind, d.Message)
}
