package ast

// Block is a brace-delimited statement list.
type Block struct {
	Loc
	Stmts []Stmt
}

// LocalVarStmt declares one or more local variables.
type LocalVarStmt struct {
	Loc
	Modifiers *Modifiers
	Type      *TypeRef // Name is "var" for inferred locals
	Vars      []*VarDecl
}

// VarDecl is one declarator of a local variable declaration.
type VarDecl struct {
	Loc
	Name string
	Init Expr
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Loc
	X Expr
}

// ReturnStmt is a return statement. Result is nil for a bare return.
type ReturnStmt struct {
	Loc
	Result Expr
}

// ThrowStmt is a throw statement.
type ThrowStmt struct {
	Loc
	X Expr
}

// IfStmt is an if statement. Else is nil when absent.
type IfStmt struct {
	Loc
	Cond Expr
	Then Stmt
	Else Stmt
}

// LoopStmt covers for, enhanced for, while and do loops. Header holds the
// init, condition, update and iterable parts in source order.
type LoopStmt struct {
	Loc
	Kind   string
	Header []Node
	Body   Stmt
}

// TryStmt is a try statement with optional resources.
type TryStmt struct {
	Loc
	Resources []Node
	Body      *Block
	Catches   []*CatchClause
	Finally   *Block
}

// CatchClause is one catch handler.
type CatchClause struct {
	Loc
	Types []*TypeRef
	Name  string
	Body  *Block
}

// ExplicitCtorCall is a this(...) or super(...) call opening a constructor body.
type ExplicitCtorCall struct {
	Loc
	Kind   string // "this" or "super"
	Object Expr   // qualifier of outer.super(...), usually nil
	Args   []Expr
}

// LocalClassStmt declares a class, record, enum or interface inside a block.
type LocalClassStmt struct {
	Loc
	Decl *TypeDecl
}

// OtherStmt is any statement detectors do not match on directly, such as
// labeled, synchronized, yield or assert statements.
type OtherStmt struct {
	Loc
	Kind     string
	Children []Node
}

func (*Block) stmtNode()            {}
func (*LocalVarStmt) stmtNode()     {}
func (*ExprStmt) stmtNode()         {}
func (*ReturnStmt) stmtNode()       {}
func (*ThrowStmt) stmtNode()        {}
func (*IfStmt) stmtNode()           {}
func (*LoopStmt) stmtNode()         {}
func (*TryStmt) stmtNode()          {}
func (*ExplicitCtorCall) stmtNode() {}
func (*LocalClassStmt) stmtNode()   {}
func (*OtherStmt) stmtNode()        {}
func (*Switch) stmtNode()           {}
