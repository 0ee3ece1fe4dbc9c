package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/kudos/pkg/ast"
)

var literalKinds = map[string]string{
	"decimal_integer_literal":        "int",
	"hex_integer_literal":            "int",
	"octal_integer_literal":          "int",
	"binary_integer_literal":         "int",
	"decimal_floating_point_literal": "float",
	"hex_floating_point_literal":     "float",
	"string_literal":                 "string",
	"text_block":                     "string",
	"character_literal":              "char",
	"true":                           "bool",
	"false":                          "bool",
	"null_literal":                   "null",
}

func (l *lowerer) expr(n *sitter.Node) ast.Expr {
	if n == nil || isComment(n) {
		return nil
	}
	if kind, ok := literalKinds[n.Type()]; ok {
		return &ast.Literal{Loc: loc(n), Kind: kind, Value: l.text(n)}
	}

	switch n.Type() {
	case "identifier":
		return &ast.Ident{Loc: loc(n), Name: l.text(n)}

	case "this":
		return &ast.This{Loc: loc(n)}

	case "super":
		return &ast.Super{Loc: loc(n)}

	case "field_access":
		object := l.expr(n.ChildByFieldName("object"))
		field := n.ChildByFieldName("field")
		if field != nil && field.Type() == "this" {
			return &ast.This{Loc: loc(n), Qualifier: ast.DottedName(object)}
		}
		return &ast.FieldAccess{Loc: loc(n), X: object, Name: l.text(field)}

	case "method_invocation":
		return &ast.MethodCall{
			Loc:  loc(n),
			X:    l.expr(n.ChildByFieldName("object")),
			Name: l.text(n.ChildByFieldName("name")),
			Args: l.arguments(n.ChildByFieldName("arguments")),
		}

	case "object_creation_expression":
		return l.newExpr(n)

	case "assignment_expression":
		return &ast.Assign{
			Loc:   loc(n),
			Left:  l.expr(n.ChildByFieldName("left")),
			Op:    l.text(n.ChildByFieldName("operator")),
			Right: l.expr(n.ChildByFieldName("right")),
		}

	case "cast_expression":
		return &ast.Cast{
			Loc:  loc(n),
			Type: l.typeRef(n.ChildByFieldName("type")),
			X:    l.expr(n.ChildByFieldName("value")),
		}

	case "parenthesized_expression":
		children := namedChildren(n)
		if len(children) == 0 {
			return nil
		}
		return &ast.Paren{Loc: loc(n), X: l.expr(children[0])}

	case "class_literal":
		children := namedChildren(n)
		if len(children) == 0 {
			return nil
		}
		return &ast.ClassLit{Loc: loc(n), Type: l.typeRef(children[0])}

	case "lambda_expression":
		return l.lambda(n)

	case "switch_expression":
		return l.switchNode(n, true)

	default:
		return &ast.OtherExpr{Loc: loc(n), Kind: n.Type(), Children: l.nodes(namedChildren(n))}
	}
}

func (l *lowerer) arguments(n *sitter.Node) []ast.Expr {
	var out []ast.Expr
	for _, c := range namedChildren(n) {
		if e := l.expr(c); e != nil {
			out = append(out, e)
		}
	}
	return out
}

func (l *lowerer) newExpr(n *sitter.Node) ast.Expr {
	typ := n.ChildByFieldName("type")
	e := &ast.New{
		Loc:  loc(n),
		Type: l.typeRef(typ),
		Args: l.arguments(n.ChildByFieldName("arguments")),
	}
	// outer.new Inner(): the qualifying expression precedes the type.
	if children := namedChildren(n); len(children) > 0 && typ != nil && !sameNode(children[0], typ) {
		switch children[0].Type() {
		case "type_arguments", "class_body", "argument_list":
		default:
			e.Outer = l.expr(children[0])
		}
	}
	if body := childOfType(n, "class_body"); body != nil {
		e.Body = l.anonymous(body)
	}
	return e
}

func (l *lowerer) lambda(n *sitter.Node) ast.Expr {
	lam := &ast.Lambda{Loc: loc(n)}
	if params := n.ChildByFieldName("parameters"); params != nil {
		switch params.Type() {
		case "identifier":
			lam.Params = []*ast.Param{{Loc: loc(params), Name: l.text(params)}}
		default:
			lam.Params = l.params(params)
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		if body.Type() == "block" {
			lam.Body = l.block(body)
		} else if e := l.expr(body); e != nil {
			lam.Body = e
		}
	}
	return lam
}
