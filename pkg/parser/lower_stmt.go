package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/kudos/pkg/ast"
)

var statementKinds = map[string]bool{
	"block":                           true,
	"local_variable_declaration":      true,
	"expression_statement":            true,
	"return_statement":                true,
	"throw_statement":                 true,
	"if_statement":                    true,
	"while_statement":                 true,
	"do_statement":                    true,
	"for_statement":                   true,
	"enhanced_for_statement":          true,
	"try_statement":                   true,
	"try_with_resources_statement":    true,
	"switch_statement":                true,
	"explicit_constructor_invocation": true,
	"labeled_statement":               true,
	"synchronized_statement":          true,
	"yield_statement":                 true,
	"assert_statement":                true,
	"break_statement":                 true,
	"continue_statement":              true,
	"class_declaration":               true,
	"record_declaration":              true,
	"enum_declaration":                true,
	"interface_declaration":           true,
	"annotation_type_declaration":     true,
}

// node lowers n as a statement or an expression depending on its kind.
func (l *lowerer) node(n *sitter.Node) ast.Node {
	if statementKinds[n.Type()] {
		if s := l.stmt(n); s != nil {
			return s
		}
		return nil
	}
	if e := l.expr(n); e != nil {
		return e
	}
	return nil
}

func (l *lowerer) nodes(ns []*sitter.Node) []ast.Node {
	var out []ast.Node
	for _, n := range ns {
		if lowered := l.node(n); lowered != nil {
			out = append(out, lowered)
		}
	}
	return out
}

func (l *lowerer) block(n *sitter.Node) *ast.Block {
	if n == nil {
		return nil
	}
	b := &ast.Block{Loc: loc(n)}
	for _, c := range namedChildren(n) {
		if s := l.stmt(c); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}
	return b
}

func (l *lowerer) stmt(n *sitter.Node) ast.Stmt {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "block", "constructor_body":
		return l.block(n)

	case "local_variable_declaration":
		s := &ast.LocalVarStmt{
			Loc:       loc(n),
			Modifiers: l.modifiers(childOfType(n, "modifiers")),
			Type:      l.typeRef(n.ChildByFieldName("type")),
		}
		for _, d := range childrenOfType(n, "variable_declarator") {
			s.Vars = append(s.Vars, &ast.VarDecl{
				Loc:  loc(d),
				Name: l.text(d.ChildByFieldName("name")),
				Init: l.expr(d.ChildByFieldName("value")),
			})
		}
		return s

	case "expression_statement":
		children := namedChildren(n)
		if len(children) == 0 {
			return nil
		}
		if children[0].Type() == "switch_expression" {
			return l.switchNode(children[0], false)
		}
		return &ast.ExprStmt{Loc: loc(n), X: l.expr(children[0])}

	case "return_statement":
		s := &ast.ReturnStmt{Loc: loc(n)}
		if children := namedChildren(n); len(children) > 0 {
			s.Result = l.expr(children[0])
		}
		return s

	case "throw_statement":
		s := &ast.ThrowStmt{Loc: loc(n)}
		if children := namedChildren(n); len(children) > 0 {
			s.X = l.expr(children[0])
		}
		return s

	case "if_statement":
		return &ast.IfStmt{
			Loc:  loc(n),
			Cond: l.expr(n.ChildByFieldName("condition")),
			Then: l.stmt(n.ChildByFieldName("consequence")),
			Else: l.stmt(n.ChildByFieldName("alternative")),
		}

	case "while_statement", "do_statement", "for_statement", "enhanced_for_statement":
		return l.loop(n)

	case "try_statement", "try_with_resources_statement":
		return l.try(n)

	case "switch_expression", "switch_statement":
		return l.switchNode(n, false)

	case "explicit_constructor_invocation":
		s := &ast.ExplicitCtorCall{
			Loc:    loc(n),
			Object: l.expr(n.ChildByFieldName("object")),
			Args:   l.arguments(n.ChildByFieldName("arguments")),
		}
		if ctor := n.ChildByFieldName("constructor"); ctor != nil {
			s.Kind = ctor.Type()
		}
		return s

	case "class_declaration", "record_declaration", "enum_declaration",
		"interface_declaration", "annotation_type_declaration":
		decl := l.typeDecl(n, l.scope)
		if decl == nil {
			return nil
		}
		decl.Local = true
		return &ast.LocalClassStmt{Loc: loc(n), Decl: decl}

	default:
		return &ast.OtherStmt{Loc: loc(n), Kind: n.Type(), Children: l.nodes(namedChildren(n))}
	}
}

func (l *lowerer) loop(n *sitter.Node) ast.Stmt {
	s := &ast.LoopStmt{Loc: loc(n), Kind: n.Type()}
	body := n.ChildByFieldName("body")
	for _, c := range namedChildren(n) {
		if sameNode(c, body) {
			continue
		}
		if lowered := l.node(c); lowered != nil {
			s.Header = append(s.Header, lowered)
		}
	}
	s.Body = l.stmt(body)
	return s
}

func (l *lowerer) try(n *sitter.Node) ast.Stmt {
	s := &ast.TryStmt{Loc: loc(n)}
	for _, c := range namedChildren(n) {
		switch c.Type() {
		case "resource_specification":
			for _, r := range childrenOfType(c, "resource") {
				if value := r.ChildByFieldName("value"); value != nil {
					s.Resources = append(s.Resources, l.expr(value))
					continue
				}
				s.Resources = append(s.Resources, l.nodes(namedChildren(r))...)
			}
		case "block":
			s.Body = l.block(c)
		case "catch_clause":
			s.Catches = append(s.Catches, l.catchClause(c))
		case "finally_clause":
			s.Finally = l.block(childOfType(c, "block"))
		}
	}
	return s
}

func (l *lowerer) catchClause(n *sitter.Node) *ast.CatchClause {
	cc := &ast.CatchClause{Loc: loc(n), Body: l.block(n.ChildByFieldName("body"))}
	if param := childOfType(n, "catch_formal_parameter"); param != nil {
		cc.Name = l.text(param.ChildByFieldName("name"))
		if types := childOfType(param, "catch_type"); types != nil {
			cc.Types = l.typeList(types)
		}
	}
	return cc
}

func (l *lowerer) switchNode(n *sitter.Node, isExpr bool) *ast.Switch {
	sw := &ast.Switch{
		Loc:    loc(n),
		Cond:   l.expr(n.ChildByFieldName("condition")),
		IsExpr: isExpr,
	}
	for _, g := range namedChildren(n.ChildByFieldName("body")) {
		c := &ast.SwitchCase{Loc: loc(g), Arrow: g.Type() == "switch_rule"}
		for _, part := range namedChildren(g) {
			if part.Type() == "switch_label" {
				l.switchLabel(c, part)
				continue
			}
			if s := l.stmt(part); s != nil {
				c.Body = append(c.Body, s)
			}
		}
		sw.Cases = append(sw.Cases, c)
	}
	return sw
}

func (l *lowerer) switchLabel(c *ast.SwitchCase, n *sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		part := n.Child(i)
		if part == nil {
			continue
		}
		if part.Type() == "default" {
			c.Default = true
			continue
		}
		if part.IsNamed() && !isComment(part) {
			if e := l.expr(part); e != nil {
				c.Labels = append(c.Labels, e)
			}
		}
	}
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
