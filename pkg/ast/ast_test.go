package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/kudos/pkg/token"
)

func TestTypeRef(t *testing.T) {
	tests := []struct {
		name       string
		ref        *TypeRef
		wantString string
		wantSimple string
		primitive  bool
		array      bool
	}{
		{"nil", nil, "", "", false, false},
		{"primitive", &TypeRef{Name: "int"}, "int", "int", true, false},
		{"primitive array", &TypeRef{Name: "int", Dims: 2}, "int[][]", "int", false, true},
		{"qualified", &TypeRef{Name: "java.util.Date"}, "java.util.Date", "Date", false, false},
		{
			"generic",
			&TypeRef{Name: "Map", Args: []*TypeRef{{Name: "String"}, {Name: "List", Args: []*TypeRef{{Name: "?"}}}}},
			"Map<String, List<?>>", "Map", false, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantString, tt.ref.String())
			assert.Equal(t, tt.wantSimple, tt.ref.SimpleName())
			assert.Equal(t, tt.primitive, tt.ref.IsPrimitive())
			assert.Equal(t, tt.array, tt.ref.IsArray())
		})
	}
}

func TestModifiers(t *testing.T) {
	var none *Modifiers
	assert.False(t, none.Has("static"))
	assert.Nil(t, none.AnnotationList())

	m := &Modifiers{
		Keywords:    []string{"public", "final"},
		Annotations: []*Annotation{{Name: "Override"}},
	}
	assert.True(t, m.Has("final"))
	assert.False(t, m.Has("static"))
	assert.Len(t, m.AnnotationList(), 1)

	f := &FieldDecl{Modifiers: m}
	assert.True(t, f.IsFinal())
	assert.False(t, f.IsStatic())
}

func TestAnnotationArg(t *testing.T) {
	value := &ClassLit{Type: &TypeRef{Name: "Parameterized"}}
	a := &Annotation{Name: "RunWith", Args: []*AnnotationArg{{Name: "value", Value: value}}}
	assert.Same(t, value, a.Arg("value"))
	assert.Nil(t, a.Arg("timeout"))
}

func TestTypeDecl(t *testing.T) {
	outer := &TypeDecl{Kind: KindClass, Name: "Outer"}
	inner := &TypeDecl{Kind: KindClass, Name: "Inner", Outer: outer}
	static := &TypeDecl{Kind: KindClass, Name: "Nested", Outer: outer, Modifiers: &Modifiers{Keywords: []string{"static"}}}
	nestedEnum := &TypeDecl{Kind: KindEnum, Name: "Mode", Outer: outer}

	assert.True(t, outer.IsStatic(), "top-level types are static")
	assert.False(t, inner.IsStatic())
	assert.True(t, static.IsStatic())
	assert.True(t, nestedEnum.IsStatic(), "member enums are implicitly static")

	outer.Constructors = []*ConstructorDecl{
		{Params: nil},
		{Params: []*Param{{Name: "other"}}},
		{Params: []*Param{{Name: "a"}, {Name: "b"}}},
	}
	require.Len(t, outer.ConstructorsWithArity(1), 1)
	assert.Equal(t, "other", outer.ConstructorsWithArity(1)[0].Params[0].Name)
	assert.Empty(t, outer.ConstructorsWithArity(3))
}

func TestTypeKindString(t *testing.T) {
	assert.Equal(t, "class", KindClass.String())
	assert.Equal(t, "record", KindRecord.String())
	assert.Equal(t, "annotation", KindAnnotation.String())
	assert.Equal(t, "unknown", TypeKind(99).String())
}

func TestCompilationUnit(t *testing.T) {
	unit := NewCompilationUnit("A.java", []byte("class A {\n    int x;\n}\n"))
	assert.Equal(t, "class A {", unit.Line(1))
	assert.Equal(t, "int x;", unit.Line(2))
	assert.Equal(t, "", unit.Line(0))
	assert.Equal(t, "", unit.Line(99))

	a := &TypeDecl{Name: "A"}
	b := &TypeDecl{Name: "B", Outer: a}
	c := &TypeDecl{Name: "C", Outer: b}
	d := &TypeDecl{Name: "D"}
	a.Nested = []*TypeDecl{b}
	b.Nested = []*TypeDecl{c}
	unit.Types = []*TypeDecl{a, d}

	var names []string
	for _, decl := range unit.AllTypes() {
		names = append(names, decl.Name)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, names)
}

func TestLocPositions(t *testing.T) {
	l := Loc{Span: token.Span{
		Start: token.Position{Line: 2, Column: 5},
		End:   token.Position{Line: 2, Column: 9},
	}}
	id := &Ident{Loc: l, Name: "x"}
	assert.Equal(t, 5, id.Pos().Column)
	assert.Equal(t, 9, id.End().Column)
}

func TestSwitchDefault(t *testing.T) {
	def := &SwitchCase{Default: true}
	sw := &Switch{Cases: []*SwitchCase{{Labels: []Expr{&Literal{Kind: "decimal_integer_literal", Value: "1"}}}, def}}
	assert.True(t, sw.HasDefault())
	assert.Same(t, def, sw.Default())

	assert.False(t, (&Switch{}).HasDefault())
}

func TestExprHelpers(t *testing.T) {
	x := &Ident{Name: "x"}

	t.Run("unparen", func(t *testing.T) {
		assert.Same(t, x, Unparen(&Paren{X: &Paren{X: x}}))
		cast := &Cast{X: x}
		assert.Same(t, cast, Unparen(&Paren{X: cast}))
	})

	t.Run("uncast", func(t *testing.T) {
		assert.Same(t, x, Uncast(&Paren{X: &Cast{X: &Paren{X: x}}}))
	})

	t.Run("dotted name", func(t *testing.T) {
		e := &FieldAccess{X: &FieldAccess{X: &Ident{Name: "javax"}, Name: "swing"}, Name: "SwingUtilities"}
		assert.Equal(t, "javax.swing.SwingUtilities", DottedName(e))
		assert.Equal(t, "", DottedName(&FieldAccess{X: &This{}, Name: "f"}))
		assert.Equal(t, "", DottedName(&Literal{}))
	})

	t.Run("super call", func(t *testing.T) {
		call := &MethodCall{X: &Super{}, Name: "clone"}
		assert.True(t, IsSuperCall(call, "clone", 0))
		assert.False(t, IsSuperCall(call, "clone", 1))
		assert.False(t, IsSuperCall(&MethodCall{X: &This{}, Name: "clone"}, "clone", 0))
		assert.False(t, IsSuperCall(x, "clone", 0))
	})

	t.Run("field of", func(t *testing.T) {
		name, ok := FieldOf(&FieldAccess{X: &This{}, Name: "amount"}, "this")
		assert.True(t, ok)
		assert.Equal(t, "amount", name)

		name, ok = FieldOf(&FieldAccess{X: &Ident{Name: "other"}, Name: "amount"}, "other")
		assert.True(t, ok)
		assert.Equal(t, "amount", name)

		_, ok = FieldOf(&FieldAccess{X: &This{Qualifier: "Outer"}, Name: "amount"}, "this")
		assert.False(t, ok)
		_, ok = FieldOf(&FieldAccess{X: &Ident{Name: "that"}, Name: "amount"}, "other")
		assert.False(t, ok)
	})
}
