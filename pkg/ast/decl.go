package ast

import "strings"

// TypeKind distinguishes the flavors of type declaration.
type TypeKind int

// Type declaration kinds.
const (
	KindClass TypeKind = iota
	KindInterface
	KindEnum
	KindRecord
	KindAnnotation
)

func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindRecord:
		return "record"
	case KindAnnotation:
		return "annotation"
	default:
		return "unknown"
	}
}

// TypeDecl is a class, interface, enum, record or annotation declaration.
// Anonymous class bodies are TypeDecls with Anonymous set and an empty Name.
type TypeDecl struct {
	Loc
	NameSpan      Loc
	Kind          TypeKind
	Name          string
	QualifiedName string // package.Outer.Inner; the enclosing name for anonymous classes
	Modifiers     *Modifiers
	TypeParams    []string
	Extends       *TypeRef   // superclass; nil when implicit
	Implements    []*TypeRef // implemented interfaces, or extended ones for interfaces
	Fields        []*FieldDecl
	Methods       []*MethodDecl
	Constructors  []*ConstructorDecl
	Constants     []*EnumConstant
	Components    []*Param // record components
	Nested        []*TypeDecl
	Outer         *TypeDecl

	// Members lists fields, methods, constructors, initializer blocks and
	// enum constants in source order. Member types are kept in Nested only.
	Members []Node

	Anonymous bool
	Local     bool
}

// IsStatic reports whether the declaration is a static member or implicitly
// static (interfaces, enums, records, annotations and top-level types).
func (t *TypeDecl) IsStatic() bool {
	if t.Outer == nil || t.Kind != KindClass {
		return true
	}
	return t.Modifiers.Has("static")
}

// ConstructorsWithArity returns the constructors taking exactly n parameters.
func (t *TypeDecl) ConstructorsWithArity(n int) []*ConstructorDecl {
	var out []*ConstructorDecl
	for _, c := range t.Constructors {
		if len(c.Params) == n {
			out = append(out, c)
		}
	}
	return out
}

// Modifiers holds the keyword modifiers and annotations of a declaration.
type Modifiers struct {
	Keywords    []string
	Annotations []*Annotation
}

// Has reports whether the keyword modifier kw is present.
func (m *Modifiers) Has(kw string) bool {
	if m == nil {
		return false
	}
	for _, k := range m.Keywords {
		if k == kw {
			return true
		}
	}
	return false
}

// AnnotationList returns the annotations, tolerating a nil receiver.
func (m *Modifiers) AnnotationList() []*Annotation {
	if m == nil {
		return nil
	}
	return m.Annotations
}

// Annotation is a marker or normal annotation use such as @Test or
// @RunWith(Parameterized.class).
type Annotation struct {
	Loc
	Name string // as written, possibly qualified
	Args []*AnnotationArg
}

// Arg returns the value of the named element, treating a single unnamed
// value as "value".
func (a *Annotation) Arg(name string) Expr {
	for _, arg := range a.Args {
		if arg.Name == name {
			return arg.Value
		}
	}
	return nil
}

// AnnotationArg is one element value of an annotation.
type AnnotationArg struct {
	Name  string
	Value Expr
}

// TypeRef is a reference to a type as written in source.
type TypeRef struct {
	Loc
	Name string // dotted name without type arguments or dimensions
	Args []*TypeRef
	Dims int
}

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true, "void": true,
}

// SimpleName returns the last segment of the name.
func (r *TypeRef) SimpleName() string {
	if r == nil {
		return ""
	}
	if i := strings.LastIndexByte(r.Name, '.'); i >= 0 {
		return r.Name[i+1:]
	}
	return r.Name
}

// IsPrimitive reports whether the reference names a primitive type or void
// with no array dimensions.
func (r *TypeRef) IsPrimitive() bool {
	return r != nil && r.Dims == 0 && primitives[r.Name]
}

// IsArray reports whether the reference has array dimensions.
func (r *TypeRef) IsArray() bool {
	return r != nil && r.Dims > 0
}

func (r *TypeRef) String() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Args) > 0 {
		b.WriteByte('<')
		for i, a := range r.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte('>')
	}
	for i := 0; i < r.Dims; i++ {
		b.WriteString("[]")
	}
	return b.String()
}

// FieldDecl is one declarator of a field declaration. "int a, b;" yields two
// FieldDecls sharing modifiers and type.
type FieldDecl struct {
	Loc
	Modifiers *Modifiers
	Type      *TypeRef
	Name      string
	Init      Expr
}

// IsStatic reports whether the field is static.
func (f *FieldDecl) IsStatic() bool { return f.Modifiers.Has("static") }

// IsFinal reports whether the field is final.
func (f *FieldDecl) IsFinal() bool { return f.Modifiers.Has("final") }

// Param is a formal parameter, record component or lambda parameter.
type Param struct {
	Loc
	Modifiers *Modifiers
	Type      *TypeRef // nil for inferred lambda parameters
	Name      string
	Varargs   bool
}

// MethodDecl is a method declaration. Body is nil for abstract and native
// methods.
type MethodDecl struct {
	Loc
	NameSpan   Loc
	Modifiers  *Modifiers
	TypeParams []string
	Result     *TypeRef
	Name       string
	Params     []*Param
	Throws     []*TypeRef
	Body       *Block
}

// ConstructorDecl is a constructor declaration, including the compact
// constructors of records.
type ConstructorDecl struct {
	Loc
	NameSpan   Loc
	Modifiers  *Modifiers
	TypeParams []string
	Name       string
	Params     []*Param
	Throws     []*TypeRef
	Body       *Block
	Compact    bool
}

// EnumConstant is one constant of an enum body.
type EnumConstant struct {
	Loc
	Modifiers *Modifiers
	Name      string
	Args      []Expr
	Body      *TypeDecl
}

// Initializer is an instance or static initializer block.
type Initializer struct {
	Loc
	Static bool
	Body   *Block
}
