// Package resolve maps type references found in parsed units to their
// declarations.
//
// Declarations come from two places: the Index of every unit parsed in the
// current run, and a built-in library table describing well-known JDK, test
// framework and UI toolkit types. Anything else is unresolved. Resolution never
// fails with an error; callers receive a Result and must check Resolved before
// relying on it.
package resolve

import (
	"strings"

	"github.com/leapstack-labs/kudos/pkg/ast"
)

// Status tags a resolution outcome.
type Status int

// Resolution outcomes.
const (
	StatusUnresolved Status = iota
	StatusResolved
)

func (s Status) String() string {
	if s == StatusResolved {
		return "resolved"
	}
	return "unresolved"
}

// Result is the outcome of resolving a reference. An unresolved Result may
// still carry the qualified name learned from a single-type import.
type Result struct {
	Status Status
	Name   string
	Type   *Type
}

// Resolved reports whether the reference was resolved to a declaration.
func (r Result) Resolved() bool {
	return r.Status == StatusResolved && r.Type != nil
}

func resolved(t *Type) Result {
	return Result{Status: StatusResolved, Name: t.Name, Type: t}
}

func unresolved(name string) Result {
	return Result{Status: StatusUnresolved, Name: name}
}

// Truth is a three-valued answer for questions that depend on resolution.
type Truth int

// Truth values. Unknown means some type on the way could not be resolved.
const (
	Unknown Truth = iota
	No
	Yes
)

func (t Truth) String() string {
	switch t {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}

// Type is a resolved type: either declared in a parsed unit (Decl and Unit
// set) or described by the library table.
type Type struct {
	Name string // fully qualified, nested types joined with '.'
	Kind ast.TypeKind
	Decl *ast.TypeDecl
	Unit *ast.CompilationUnit

	lib *libraryType
}

// SimpleName returns the last segment of the qualified name.
func (t *Type) SimpleName() string {
	if i := strings.LastIndexByte(t.Name, '.'); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// IsLibrary reports whether the type comes from the library table.
func (t *Type) IsLibrary() bool { return t.lib != nil }

// LibraryCopyConstructor reports whether a library type is known to offer a
// public constructor copying an instance or compatible collection.
func (t *Type) LibraryCopyConstructor() bool {
	return t.lib != nil && t.lib.copyCtor
}

// Method is a method declared on a type.
type Method struct {
	Name   string
	Params []string // parameter types as written; qualified for library types
	Owner  *Type
	Decl   *ast.MethodDecl // nil for library methods
}

// Arity returns the number of parameters.
func (m Method) Arity() int { return len(m.Params) }

// Abstract reports whether the method has no body. Library methods are
// abstract when their owner is an interface.
func (m Method) Abstract() bool {
	if m.Decl != nil {
		return m.Decl.Body == nil
	}
	return m.Owner != nil && m.Owner.Kind == ast.KindInterface
}

// Resolver answers symbol questions from the point of view of one unit.
// A Resolver is used by one goroutine at a time.
type Resolver interface {
	// Declared returns the type for a declaration of the unit.
	Declared(decl *ast.TypeDecl) *Type

	// ResolveType resolves a simple or qualified type name as written inside
	// scope, following the enclosing types, imports, the unit's package and
	// java.lang in that order.
	ResolveType(scope *ast.TypeDecl, name string) Result

	// ResolveStatic resolves the owner of an unqualified static member, as
	// brought in by static imports. Methods declared by the enclosing types
	// shadow imports and resolve to the declaring type.
	ResolveStatic(scope *ast.TypeDecl, member string) Result

	// Lookup resolves a fully qualified name.
	Lookup(fqn string) Result

	// Supertypes returns the direct supertypes of t, including the implicit
	// java.lang.Object, java.lang.Enum or java.lang.Record superclass.
	Supertypes(t *Type) []Result

	// Ancestors returns every resolvable proper supertype of t in breadth
	// first order. The flag is false when some supertype is unresolved.
	Ancestors(t *Type) ([]*Type, bool)

	// IsSubtype reports whether t is fqn or inherits from it.
	IsSubtype(t *Type, fqn string) Truth

	// Fields returns the fields declared by t and its superclasses. The flag
	// is false when the superclass chain could not be fully resolved.
	Fields(t *Type) ([]*ast.FieldDecl, bool)

	// Methods returns the methods declared directly by t.
	Methods(t *Type) []Method

	// ForUnit returns a Resolver answering from the point of view of another
	// unit, typically the one declaring a type reached through resolution.
	ForUnit(unit *ast.CompilationUnit) Resolver
}
