package pattern

import (
	"fmt"

	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/resolve"
	"github.com/leapstack-labs/kudos/pkg/token"
)

// Unit is a parsed compilation unit together with the resolver answering
// symbol questions about it.
type Unit struct {
	*ast.CompilationUnit
	Resolver resolve.Resolver
}

// Detector finds occurrences of one pattern in a unit.
type Detector interface {
	// ID returns the ID of the bound definition, or "" before Bind.
	ID() string

	// Definition returns the bound definition, or nil before Bind.
	Definition() *Definition

	// Bind associates the detector with its definition. A detector is bound
	// exactly once.
	Bind(def *Definition) error

	// Detect returns every occurrence of the pattern in unit. A detector that
	// has not been bound fails with ErrUnbound.
	Detect(unit *Unit) ([]Instance, error)
}

// Factory creates an unbound detector.
type Factory func() (Detector, error)

// Base implements the binding half of Detector. Detectors embed it and
// implement Detect.
type Base struct {
	def *Definition
}

// ID implements Detector.
func (b *Base) ID() string {
	if b.def == nil {
		return ""
	}
	return b.def.ID
}

// Definition implements Detector.
func (b *Base) Definition() *Definition { return b.def }

// Bind implements Detector.
func (b *Base) Bind(def *Definition) error {
	if def == nil {
		return fmt.Errorf("bind: nil definition")
	}
	if b.def != nil {
		return fmt.Errorf("%w to %s", ErrAlreadyBound, b.def.ID)
	}
	b.def = def
	return nil
}

// Bound returns ErrUnbound when Bind has not been called.
func (b *Base) Bound() error {
	if b.def == nil {
		return ErrUnbound
	}
	return nil
}

// Instance builds an instance of the bound pattern located at node.
func (b *Base) Instance(unit *Unit, owner *ast.TypeDecl, node ast.Node) Instance {
	return NewInstance(b.def, unit, owner, node.Pos(), node.End())
}

// NewInstance builds an instance spanning [pos, end) inside owner.
func NewInstance(def *Definition, unit *Unit, owner *ast.TypeDecl, pos, end token.Position) Instance {
	inst := Instance{
		Definition: def,
		Pos:        pos,
		End:        end,
	}
	if owner != nil {
		inst.TypeName = owner.QualifiedName
	}
	if unit != nil && unit.CompilationUnit != nil {
		inst.Path = unit.Path
		inst.Snippet = unit.Line(pos.Line)
	}
	return inst
}
