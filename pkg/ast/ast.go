// Package ast defines the typed syntax tree that detectors inspect.
//
// The tree is produced by pkg/parser from a tree-sitter concrete syntax tree.
// It keeps only what pattern detection needs: declarations with their
// modifiers and annotations, statements, and the expression forms detectors
// match on. Everything else is kept as OtherExpr or OtherStmt so traversal
// still reaches nested calls, lambdas and anonymous classes.
package ast

import (
	"strings"

	"github.com/leapstack-labs/kudos/pkg/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
	// End returns the position of the character immediately after the node.
	End() token.Position
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Loc records the source span of a node. It is embedded by every node type.
type Loc struct {
	Span token.Span
}

// Pos implements Node.
func (l Loc) Pos() token.Position { return l.Span.Start }

// End implements Node.
func (l Loc) End() token.Position { return l.Span.End }

// CompilationUnit is the parsed form of one source file.
type CompilationUnit struct {
	Loc
	Path    string
	Package string
	Imports []*Import
	Types   []*TypeDecl
	Source  []byte

	lines []string
}

// NewCompilationUnit returns an empty unit for the given file contents.
func NewCompilationUnit(path string, src []byte) *CompilationUnit {
	return &CompilationUnit{
		Path:   path,
		Source: src,
		lines:  strings.Split(string(src), "\n"),
	}
}

// Import is a single import declaration.
type Import struct {
	Loc
	Path     string // dotted name without the trailing ".*"
	Static   bool
	Wildcard bool
}

// AllTypes returns every top-level and member type declaration in source
// order, outer types before their members. Anonymous and local classes are
// reached through Walk instead.
func (u *CompilationUnit) AllTypes() []*TypeDecl {
	var out []*TypeDecl
	var visit func(types []*TypeDecl)
	visit = func(types []*TypeDecl) {
		for _, t := range types {
			out = append(out, t)
			visit(t.Nested)
		}
	}
	visit(u.Types)
	return out
}

// Line returns the 1-based source line n with surrounding whitespace removed.
func (u *CompilationUnit) Line(n int) string {
	if n < 1 || n > len(u.lines) {
		return ""
	}
	return strings.TrimSpace(u.lines[n-1])
}
