package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/kudos/pkg/ast"
)

var typeKinds = map[string]ast.TypeKind{
	"class_declaration":           ast.KindClass,
	"interface_declaration":       ast.KindInterface,
	"enum_declaration":            ast.KindEnum,
	"record_declaration":          ast.KindRecord,
	"annotation_type_declaration": ast.KindAnnotation,
}

// typeDecl lowers a type declaration. It returns nil when n is not one.
func (l *lowerer) typeDecl(n *sitter.Node, outer *ast.TypeDecl) *ast.TypeDecl {
	kind, ok := typeKinds[n.Type()]
	if !ok {
		return nil
	}

	t := &ast.TypeDecl{
		Loc:       loc(n),
		Kind:      kind,
		Outer:     outer,
		Modifiers: l.modifiers(childOfType(n, "modifiers")),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		t.Name = l.text(name)
		t.NameSpan = loc(name)
	}
	t.QualifiedName = l.qualify(outer, t.Name)

	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		t.TypeParams = l.typeParams(tp)
	}
	if sc := n.ChildByFieldName("superclass"); sc != nil {
		if typ := namedChildren(sc); len(typ) > 0 {
			t.Extends = l.typeRef(typ[0])
		}
	}
	if si := n.ChildByFieldName("interfaces"); si != nil {
		t.Implements = l.typeList(childOfType(si, "type_list"))
	}
	if ext := childOfType(n, "extends_interfaces"); ext != nil {
		t.Implements = append(t.Implements, l.typeList(childOfType(ext, "type_list"))...)
	}
	if kind == ast.KindRecord {
		t.Components = l.params(n.ChildByFieldName("parameters"))
	}

	saved := l.scope
	l.scope = t
	l.members(t, n.ChildByFieldName("body"))
	l.scope = saved
	return t
}

func (l *lowerer) qualify(outer *ast.TypeDecl, name string) string {
	switch {
	case outer != nil && name == "":
		return outer.QualifiedName
	case outer != nil:
		return outer.QualifiedName + "." + name
	case l.unit.Package != "":
		return l.unit.Package + "." + name
	default:
		return name
	}
}

// anonymous lowers an anonymous class body nested in the current scope.
func (l *lowerer) anonymous(body *sitter.Node) *ast.TypeDecl {
	t := &ast.TypeDecl{
		Loc:       loc(body),
		Kind:      ast.KindClass,
		Outer:     l.scope,
		Anonymous: true,
	}
	t.QualifiedName = l.qualify(l.scope, "")

	saved := l.scope
	l.scope = t
	l.members(t, body)
	l.scope = saved
	return t
}

func (l *lowerer) members(t *ast.TypeDecl, body *sitter.Node) {
	implicitConstant := t.Kind == ast.KindInterface || t.Kind == ast.KindAnnotation
	for _, c := range namedChildren(body) {
		switch c.Type() {
		case "field_declaration", "constant_declaration":
			for _, f := range l.fields(c, implicitConstant) {
				t.Fields = append(t.Fields, f)
				t.Members = append(t.Members, f)
			}
		case "method_declaration", "annotation_type_element_declaration":
			m := l.method(c)
			t.Methods = append(t.Methods, m)
			t.Members = append(t.Members, m)
		case "constructor_declaration", "compact_constructor_declaration":
			ctor := l.constructor(c)
			t.Constructors = append(t.Constructors, ctor)
			t.Members = append(t.Members, ctor)
		case "block":
			t.Members = append(t.Members, &ast.Initializer{Loc: loc(c), Body: l.block(c)})
		case "static_initializer":
			t.Members = append(t.Members, &ast.Initializer{
				Loc:    loc(c),
				Static: true,
				Body:   l.block(childOfType(c, "block")),
			})
		case "enum_constant":
			ec := l.enumConstant(c)
			t.Constants = append(t.Constants, ec)
			t.Members = append(t.Members, ec)
		case "enum_body_declarations":
			l.members(t, c)
		default:
			if nested := l.typeDecl(c, t); nested != nil {
				t.Nested = append(t.Nested, nested)
			}
		}
	}
}

func (l *lowerer) enumConstant(n *sitter.Node) *ast.EnumConstant {
	ec := &ast.EnumConstant{
		Loc:       loc(n),
		Modifiers: l.modifiers(childOfType(n, "modifiers")),
		Name:      l.text(n.ChildByFieldName("name")),
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		ec.Args = l.arguments(args)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		ec.Body = l.anonymous(body)
	}
	return ec
}

func (l *lowerer) fields(n *sitter.Node, implicitConstant bool) []*ast.FieldDecl {
	mods := l.modifiers(childOfType(n, "modifiers"))
	if implicitConstant {
		mods = withKeywords(mods, "public", "static", "final")
	}
	typ := n.ChildByFieldName("type")

	var out []*ast.FieldDecl
	for _, d := range childrenOfType(n, "variable_declarator") {
		f := &ast.FieldDecl{
			Loc:       loc(n),
			Modifiers: mods,
			Type:      l.typeRef(typ),
			Name:      l.text(d.ChildByFieldName("name")),
			Init:      l.expr(d.ChildByFieldName("value")),
		}
		if dims := d.ChildByFieldName("dimensions"); dims != nil && f.Type != nil {
			f.Type.Dims += strings.Count(l.text(dims), "[")
		}
		out = append(out, f)
	}
	return out
}

// withKeywords returns modifiers extended with any missing implicit keywords.
func withKeywords(m *ast.Modifiers, kws ...string) *ast.Modifiers {
	out := &ast.Modifiers{}
	if m != nil {
		out.Keywords = append(out.Keywords, m.Keywords...)
		out.Annotations = m.Annotations
	}
	for _, kw := range kws {
		if !out.Has(kw) {
			out.Keywords = append(out.Keywords, kw)
		}
	}
	return out
}

func (l *lowerer) method(n *sitter.Node) *ast.MethodDecl {
	m := &ast.MethodDecl{
		Loc:       loc(n),
		Modifiers: l.modifiers(childOfType(n, "modifiers")),
		Result:    l.typeRef(n.ChildByFieldName("type")),
		Params:    l.params(n.ChildByFieldName("parameters")),
		Throws:    l.throws(childOfType(n, "throws")),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		m.Name = l.text(name)
		m.NameSpan = loc(name)
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		m.TypeParams = l.typeParams(tp)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		m.Body = l.block(body)
	}
	return m
}

func (l *lowerer) constructor(n *sitter.Node) *ast.ConstructorDecl {
	c := &ast.ConstructorDecl{
		Loc:       loc(n),
		Modifiers: l.modifiers(childOfType(n, "modifiers")),
		Params:    l.params(n.ChildByFieldName("parameters")),
		Throws:    l.throws(childOfType(n, "throws")),
		Compact:   n.Type() == "compact_constructor_declaration",
	}
	if name := n.ChildByFieldName("name"); name != nil {
		c.Name = l.text(name)
		c.NameSpan = loc(name)
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		c.TypeParams = l.typeParams(tp)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		c.Body = l.block(body)
	}
	return c
}

func (l *lowerer) params(n *sitter.Node) []*ast.Param {
	var out []*ast.Param
	for _, c := range namedChildren(n) {
		switch c.Type() {
		case "formal_parameter":
			p := &ast.Param{
				Loc:       loc(c),
				Modifiers: l.modifiers(childOfType(c, "modifiers")),
				Type:      l.typeRef(c.ChildByFieldName("type")),
				Name:      l.text(c.ChildByFieldName("name")),
			}
			if dims := c.ChildByFieldName("dimensions"); dims != nil && p.Type != nil {
				p.Type.Dims += strings.Count(l.text(dims), "[")
			}
			out = append(out, p)
		case "spread_parameter":
			p := &ast.Param{
				Loc:       loc(c),
				Modifiers: l.modifiers(childOfType(c, "modifiers")),
				Varargs:   true,
			}
			for _, part := range namedChildren(c) {
				switch part.Type() {
				case "modifiers":
				case "variable_declarator":
					p.Name = l.text(part.ChildByFieldName("name"))
				case "identifier":
					p.Name = l.text(part)
				default:
					if p.Type == nil {
						p.Type = l.typeRef(part)
					}
				}
			}
			out = append(out, p)
		case "identifier":
			out = append(out, &ast.Param{Loc: loc(c), Name: l.text(c)})
		}
	}
	return out
}

func (l *lowerer) throws(n *sitter.Node) []*ast.TypeRef {
	var out []*ast.TypeRef
	for _, c := range namedChildren(n) {
		out = append(out, l.typeRef(c))
	}
	return out
}

func (l *lowerer) typeParams(n *sitter.Node) []string {
	var out []string
	for _, p := range childrenOfType(n, "type_parameter") {
		if name := childOfType(p, "type_identifier", "identifier"); name != nil {
			out = append(out, l.text(name))
		}
	}
	return out
}

func (l *lowerer) typeList(n *sitter.Node) []*ast.TypeRef {
	var out []*ast.TypeRef
	for _, c := range namedChildren(n) {
		if ref := l.typeRef(c); ref != nil {
			out = append(out, ref)
		}
	}
	return out
}

// typeRef lowers any type node. Type arguments are kept in Args and array
// dimensions in Dims; Name is the bare dotted name.
func (l *lowerer) typeRef(n *sitter.Node) *ast.TypeRef {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "generic_type":
		var ref *ast.TypeRef
		for _, c := range namedChildren(n) {
			switch c.Type() {
			case "type_arguments":
				if ref != nil {
					ref.Args = l.typeList(c)
				}
			default:
				if ref == nil {
					ref = l.typeRef(c)
				}
			}
		}
		if ref == nil {
			return &ast.TypeRef{Loc: loc(n), Name: l.compactText(n)}
		}
		ref.Loc = loc(n)
		return ref

	case "array_type":
		ref := l.typeRef(n.ChildByFieldName("element"))
		if ref == nil {
			ref = &ast.TypeRef{}
		}
		ref.Loc = loc(n)
		ref.Dims += strings.Count(l.text(n.ChildByFieldName("dimensions")), "[")
		return ref

	case "annotated_type":
		children := namedChildren(n)
		if len(children) == 0 {
			return nil
		}
		return l.typeRef(children[len(children)-1])

	case "wildcard":
		return &ast.TypeRef{Loc: loc(n), Name: "?"}

	case "scoped_type_identifier", "scoped_identifier":
		// Annotations may appear between segments: java.util.@NonNull List.
		var parts []string
		for _, c := range namedChildren(n) {
			switch c.Type() {
			case "marker_annotation", "annotation":
			case "scoped_type_identifier", "scoped_identifier", "generic_type":
				if inner := l.typeRef(c); inner != nil {
					parts = append(parts, inner.Name)
				}
			default:
				parts = append(parts, l.compactText(c))
			}
		}
		return &ast.TypeRef{Loc: loc(n), Name: strings.Join(parts, ".")}

	default:
		return &ast.TypeRef{Loc: loc(n), Name: l.compactText(n)}
	}
}

func (l *lowerer) modifiers(n *sitter.Node) *ast.Modifiers {
	if n == nil {
		return nil
	}
	m := &ast.Modifiers{}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || isComment(c) {
			continue
		}
		switch c.Type() {
		case "marker_annotation", "annotation":
			m.Annotations = append(m.Annotations, l.annotation(c))
		default:
			m.Keywords = append(m.Keywords, l.text(c))
		}
	}
	return m
}

func (l *lowerer) annotation(n *sitter.Node) *ast.Annotation {
	a := &ast.Annotation{
		Loc:  loc(n),
		Name: l.compactText(n.ChildByFieldName("name")),
	}
	for _, c := range namedChildren(n.ChildByFieldName("arguments")) {
		if c.Type() == "element_value_pair" {
			a.Args = append(a.Args, &ast.AnnotationArg{
				Name:  l.text(c.ChildByFieldName("key")),
				Value: l.expr(c.ChildByFieldName("value")),
			})
			continue
		}
		a.Args = append(a.Args, &ast.AnnotationArg{Name: "value", Value: l.expr(c)})
	}
	return a
}
