package ast

// Walk traverses an AST depth-first and calls fn for each node.
// If fn returns false, the children of that node are skipped.
//
// Walking a TypeDecl visits its annotations and members but not its member
// types; those are listed separately by CompilationUnit.AllTypes. Anonymous
// class bodies, local classes and lambda bodies are visited.
func Walk(node Node, fn func(node Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	walkNode(node, fn)
}

func walkNode(node Node, fn func(node Node) bool) {
	switch n := node.(type) {
	case *CompilationUnit:
		for _, t := range n.AllTypes() {
			Walk(t, fn)
		}

	case *TypeDecl:
		walkModifiers(n.Modifiers, fn)
		for _, c := range n.Components {
			Walk(c, fn)
		}
		for _, m := range n.Members {
			Walk(m, fn)
		}

	case *FieldDecl:
		walkModifiers(n.Modifiers, fn)
		walkExpr(n.Init, fn)

	case *MethodDecl:
		walkModifiers(n.Modifiers, fn)
		for _, p := range n.Params {
			Walk(p, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *ConstructorDecl:
		walkModifiers(n.Modifiers, fn)
		for _, p := range n.Params {
			Walk(p, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *Param:
		walkModifiers(n.Modifiers, fn)

	case *Initializer:
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *EnumConstant:
		walkModifiers(n.Modifiers, fn)
		walkExprs(n.Args, fn)
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *Annotation:
		for _, arg := range n.Args {
			walkExpr(arg.Value, fn)
		}

	// Statements
	case *Block:
		walkStmts(n.Stmts, fn)

	case *LocalVarStmt:
		walkModifiers(n.Modifiers, fn)
		for _, v := range n.Vars {
			Walk(v, fn)
		}

	case *VarDecl:
		walkExpr(n.Init, fn)

	case *ExprStmt:
		walkExpr(n.X, fn)

	case *ReturnStmt:
		walkExpr(n.Result, fn)

	case *ThrowStmt:
		walkExpr(n.X, fn)

	case *IfStmt:
		walkExpr(n.Cond, fn)
		walkStmt(n.Then, fn)
		walkStmt(n.Else, fn)

	case *LoopStmt:
		for _, h := range n.Header {
			Walk(h, fn)
		}
		walkStmt(n.Body, fn)

	case *TryStmt:
		for _, r := range n.Resources {
			Walk(r, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}
		for _, c := range n.Catches {
			Walk(c, fn)
		}
		if n.Finally != nil {
			Walk(n.Finally, fn)
		}

	case *CatchClause:
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *ExplicitCtorCall:
		walkExpr(n.Object, fn)
		walkExprs(n.Args, fn)

	case *LocalClassStmt:
		if n.Decl != nil {
			Walk(n.Decl, fn)
		}

	case *OtherStmt:
		for _, c := range n.Children {
			Walk(c, fn)
		}

	// Expressions
	case *FieldAccess:
		walkExpr(n.X, fn)

	case *MethodCall:
		walkExpr(n.X, fn)
		walkExprs(n.Args, fn)

	case *New:
		walkExpr(n.Outer, fn)
		walkExprs(n.Args, fn)
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *Assign:
		walkExpr(n.Left, fn)
		walkExpr(n.Right, fn)

	case *Cast:
		walkExpr(n.X, fn)

	case *Paren:
		walkExpr(n.X, fn)

	case *Lambda:
		for _, p := range n.Params {
			Walk(p, fn)
		}
		Walk(n.Body, fn)

	case *Switch:
		walkExpr(n.Cond, fn)
		for _, c := range n.Cases {
			Walk(c, fn)
		}

	case *SwitchCase:
		walkExprs(n.Labels, fn)
		walkStmts(n.Body, fn)

	case *OtherExpr:
		for _, c := range n.Children {
			Walk(c, fn)
		}

	case *Ident, *This, *Super, *Literal, *ClassLit:
		// Leaf nodes
	}
}

func walkModifiers(m *Modifiers, fn func(node Node) bool) {
	for _, a := range m.AnnotationList() {
		Walk(a, fn)
	}
}

func walkExpr(e Expr, fn func(node Node) bool) {
	if e != nil {
		Walk(e, fn)
	}
}

func walkExprs(exprs []Expr, fn func(node Node) bool) {
	for _, e := range exprs {
		walkExpr(e, fn)
	}
}

func walkStmt(s Stmt, fn func(node Node) bool) {
	if s != nil {
		Walk(s, fn)
	}
}

func walkStmts(stmts []Stmt, fn func(node Node) bool) {
	for _, s := range stmts {
		walkStmt(s, fn)
	}
}

// Inspect calls fn for every node of the unit together with the top-level or
// member type whose body contains it. Nodes inside anonymous and local classes
// are attributed to the enclosing member type.
func Inspect(unit *CompilationUnit, fn func(owner *TypeDecl, node Node)) {
	for _, t := range unit.AllTypes() {
		owner := t
		Walk(t, func(n Node) bool {
			fn(owner, n)
			return true
		})
	}
}
