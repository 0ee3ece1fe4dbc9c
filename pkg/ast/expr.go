package ast

// Ident is a simple name.
type Ident struct {
	Loc
	Name string
}

// This is the this keyword, optionally qualified (Outer.this).
type This struct {
	Loc
	Qualifier string
}

// Super is the super keyword used as a receiver.
type Super struct {
	Loc
	Qualifier string
}

// FieldAccess is X.Name.
type FieldAccess struct {
	Loc
	X    Expr
	Name string
}

// MethodCall is a method invocation. X is nil for unqualified calls.
type MethodCall struct {
	Loc
	X    Expr
	Name string
	Args []Expr
}

// New is a class instance creation expression. Body is set for anonymous
// classes.
type New struct {
	Loc
	Type  *TypeRef
	Args  []Expr
	Body  *TypeDecl
	Outer Expr
}

// Assign is an assignment, simple or compound.
type Assign struct {
	Loc
	Left  Expr
	Op    string
	Right Expr
}

// Cast is a cast expression.
type Cast struct {
	Loc
	Type *TypeRef
	X    Expr
}

// Paren is a parenthesized expression.
type Paren struct {
	Loc
	X Expr
}

// Literal is a literal value. Kind is the literal's syntax kind, for example
// "string" or "null".
type Literal struct {
	Loc
	Kind  string
	Value string
}

// ClassLit is a class literal such as Parameterized.class.
type ClassLit struct {
	Loc
	Type *TypeRef
}

// Lambda is a lambda expression. Body is an Expr or a *Block.
type Lambda struct {
	Loc
	Params []*Param
	Body   Node
}

// Switch is a switch statement or switch expression.
type Switch struct {
	Loc
	Cond   Expr
	Cases  []*SwitchCase
	IsExpr bool
}

// HasDefault reports whether any case carries a default label.
func (s *Switch) HasDefault() bool {
	return s.Default() != nil
}

// Default returns the case holding the default label, or nil.
func (s *Switch) Default() *SwitchCase {
	for _, c := range s.Cases {
		if c.Default {
			return c
		}
	}
	return nil
}

// SwitchCase is a labeled statement group or an arrow rule. A group with
// several labels ("case 1: case 2:") is one SwitchCase.
type SwitchCase struct {
	Loc
	Default bool
	Labels  []Expr
	Arrow   bool
	Body    []Stmt
}

// OtherExpr is any expression detectors do not match on directly. Children
// keeps nested expressions, blocks and anonymous classes reachable.
type OtherExpr struct {
	Loc
	Kind     string
	Children []Node
}

func (*Ident) exprNode()       {}
func (*This) exprNode()        {}
func (*Super) exprNode()       {}
func (*FieldAccess) exprNode() {}
func (*MethodCall) exprNode()  {}
func (*New) exprNode()         {}
func (*Assign) exprNode()      {}
func (*Cast) exprNode()        {}
func (*Paren) exprNode()       {}
func (*Literal) exprNode()     {}
func (*ClassLit) exprNode()    {}
func (*Lambda) exprNode()      {}
func (*Switch) exprNode()      {}
func (*OtherExpr) exprNode()   {}

// Unparen strips any enclosing parentheses.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*Paren)
		if !ok {
			return e
		}
		e = p.X
	}
}

// Uncast strips enclosing parentheses and casts.
func Uncast(e Expr) Expr {
	for {
		switch x := e.(type) {
		case *Paren:
			e = x.X
		case *Cast:
			e = x.X
		default:
			return e
		}
	}
}

// DottedName returns the name formed by a chain of identifiers and field
// accesses, such as "javax.swing.SwingUtilities". It returns "" for any other
// expression.
func DottedName(e Expr) string {
	switch x := e.(type) {
	case *Ident:
		return x.Name
	case *FieldAccess:
		head := DottedName(x.X)
		if head == "" {
			return ""
		}
		return head + "." + x.Name
	default:
		return ""
	}
}

// IsSuperCall reports whether e is super.name(...) with the given arity.
func IsSuperCall(e Expr, name string, arity int) bool {
	call, ok := e.(*MethodCall)
	if !ok || call.Name != name || len(call.Args) != arity {
		return false
	}
	_, ok = call.X.(*Super)
	return ok
}

// FieldOf returns the field name when e is recv.name, where recv is the
// identifier named owner. Passing "this" matches this.name.
func FieldOf(e Expr, owner string) (string, bool) {
	fa, ok := e.(*FieldAccess)
	if !ok {
		return "", false
	}
	switch recv := fa.X.(type) {
	case *Ident:
		if recv.Name == owner {
			return fa.Name, true
		}
	case *This:
		if owner == "this" && recv.Qualifier == "" {
			return fa.Name, true
		}
	}
	return "", false
}
