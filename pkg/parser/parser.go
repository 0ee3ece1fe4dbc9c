// Package parser turns Java source text into the typed tree of pkg/ast.
//
// # Usage
//
//	unit, err := parser.Parse(ctx, "src/Point.java", src)
//	var perr *parser.ParseError
//	if errors.As(err, &perr) {
//	    // malformed source
//	}
//
// Parsing is done by tree-sitter with the Java grammar. The concrete syntax
// tree is lowered into ast nodes in one pass; constructs the lowering does not
// model are kept as ast.OtherExpr or ast.OtherStmt so nothing below them is
// lost to traversal.
//
// A tree containing error or missing nodes is rejected as a whole: detectors
// never see a partially recovered unit.
package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/token"
)

// ParseError represents a syntax error with position information.
type ParseError struct {
	Path    string
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: parse error: %s", e.Path, e.Pos.Line, e.Pos.Column, e.Message)
}

// Parse parses src and returns its compilation unit. Syntax errors are
// returned as *ParseError.
func Parse(ctx context.Context, path string, src []byte) (*ast.CompilationUnit, error) {
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(java.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(path, root, src)
	}

	l := &lowerer{src: src, unit: ast.NewCompilationUnit(path, src)}
	l.program(root)
	return l.unit, nil
}

// ---------- Errors ----------

func syntaxError(path string, root *sitter.Node, src []byte) *ParseError {
	n := firstError(root)
	if n == nil {
		return &ParseError{Path: path, Pos: token.Position{Line: 1, Column: 1}, Message: "malformed source"}
	}

	msg := ""
	if n.IsMissing() {
		msg = fmt.Sprintf("missing %s", n.Type())
	} else {
		text := n.Content(src)
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i]
		}
		if len(text) > 40 {
			text = text[:40] + "..."
		}
		msg = fmt.Sprintf("unexpected %q", strings.TrimSpace(text))
	}
	return &ParseError{Path: path, Pos: position(n.StartPoint(), n.StartByte()), Message: msg}
}

// firstError returns the first error or missing node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if e := firstError(n.Child(i)); e != nil {
			return e
		}
	}
	return nil
}

// ---------- Node helpers ----------

func position(p sitter.Point, offset uint32) token.Position {
	return token.Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1, Offset: int(offset)}
}

func loc(n *sitter.Node) ast.Loc {
	return ast.Loc{Span: token.Span{
		Start: position(n.StartPoint(), n.StartByte()),
		End:   position(n.EndPoint(), n.EndByte()),
	}}
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "line_comment", "block_comment", "comment":
		return true
	}
	return false
}

// namedChildren returns the named children of n, comments excluded.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if c == nil || isComment(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// childOfType returns the first child of n with one of the given types.
func childOfType(n *sitter.Node, types ...string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

// childrenOfType returns every child of n with the given type.
func childrenOfType(n *sitter.Node, typ string) []*sitter.Node {
	var out []*sitter.Node
	for _, c := range namedChildren(n) {
		if c.Type() == typ {
			out = append(out, c)
		}
	}
	return out
}

// lowerer converts tree-sitter nodes into ast nodes for one unit.
type lowerer struct {
	src   []byte
	unit  *ast.CompilationUnit
	scope *ast.TypeDecl // type whose body is being lowered
}

func (l *lowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(l.src)
}

// compactText returns the node text with all whitespace removed, for dotted
// names split across lines.
func (l *lowerer) compactText(n *sitter.Node) string {
	return strings.Join(strings.Fields(l.text(n)), "")
}

func (l *lowerer) program(root *sitter.Node) {
	l.unit.Loc = loc(root)
	for _, c := range namedChildren(root) {
		switch c.Type() {
		case "package_declaration":
			if name := childOfType(c, "scoped_identifier", "identifier"); name != nil {
				l.unit.Package = l.compactText(name)
			}
		case "import_declaration":
			l.unit.Imports = append(l.unit.Imports, l.importDecl(c))
		default:
			if t := l.typeDecl(c, nil); t != nil {
				l.unit.Types = append(l.unit.Types, t)
			}
		}
	}
}

func (l *lowerer) importDecl(n *sitter.Node) *ast.Import {
	imp := &ast.Import{Loc: loc(n)}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "static":
			imp.Static = true
		case "identifier", "scoped_identifier":
			imp.Path = l.compactText(c)
		case "asterisk":
			imp.Wildcard = true
		}
	}
	return imp
}
