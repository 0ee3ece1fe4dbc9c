package detectors

import (
	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/pattern"
	"github.com/leapstack-labs/kudos/pkg/resolve"
)

const (
	objectType     = "java.lang.Object"
	cloneableType  = "java.lang.Cloneable"
	comparableType = "java.lang.Comparable"
)

// namedTypes returns the named type declarations of unit: top-level and
// member types in source order, each followed by the local classes declared
// in its body.
func namedTypes(unit *pattern.Unit) []*ast.TypeDecl {
	var out []*ast.TypeDecl
	for _, t := range unit.AllTypes() {
		out = append(out, t)
		ast.Walk(t, func(n ast.Node) bool {
			if lc, ok := n.(*ast.LocalClassStmt); ok && lc.Decl != nil {
				out = append(out, lc.Decl)
			}
			return true
		})
	}
	return out
}

// qualifiedName resolves a type name written in scope, returning "" when it
// cannot be resolved.
func qualifiedName(res resolve.Resolver, scope *ast.TypeDecl, name string) string {
	r := res.ResolveType(scope, name)
	if !r.Resolved() {
		return ""
	}
	return r.Type.Name
}

// annotatedWith returns the first annotation of mods resolving to one of
// the given qualified names.
func annotatedWith(res resolve.Resolver, scope *ast.TypeDecl, mods *ast.Modifiers, names map[string]bool) *ast.Annotation {
	for _, a := range mods.AnnotationList() {
		if names[qualifiedName(res, scope, a.Name)] {
			return a
		}
	}
	return nil
}

// findMethod looks for a method with the given name and arity on t and then
// on its ancestors, nearest first.
func findMethod(res resolve.Resolver, t *resolve.Type, name string, arity int) (resolve.Method, bool) {
	if m, ok := declaredMethod(res, t, name, arity); ok {
		return m, true
	}
	ancestors, _ := res.Ancestors(t)
	for _, a := range ancestors {
		if m, ok := declaredMethod(res, a, name, arity); ok {
			return m, true
		}
	}
	return resolve.Method{}, false
}

func declaredMethod(res resolve.Resolver, t *resolve.Type, name string, arity int) (resolve.Method, bool) {
	for _, m := range res.Methods(t) {
		if m.Name == name && m.Arity() == arity {
			return m, true
		}
	}
	return resolve.Method{}, false
}

// instanceMethod returns the non-static method of t with the given name and
// arity that has a body.
func instanceMethod(t *ast.TypeDecl, name string, arity int) *ast.MethodDecl {
	for _, m := range t.Methods {
		if m.Name == name && len(m.Params) == arity && m.Body != nil && !m.Modifiers.Has("static") {
			return m
		}
	}
	return nil
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}
