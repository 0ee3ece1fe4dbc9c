package detectors

import (
	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/pattern"
	"github.com/leapstack-labs/kudos/pkg/resolve"
)

// CloneBlueprint (OB01) detects clone() overrides that obtain the copy from
// super.clone() and return it.
//
// Accepted bodies:
//
//	return (T) super.clone();
//
//	T copy = (T) super.clone();
//	return copy;
//
//	try {
//		return (T) super.clone();
//	} catch (CloneNotSupportedException e) {
//		throw new AssertionError(e);
//	}
//
// The class must be a subtype of Cloneable. When that cannot be decided
// because a supertype is unresolved, nothing is reported.
type CloneBlueprint struct {
	pattern.Base
}

// Detect implements pattern.Detector.
func (d *CloneBlueprint) Detect(unit *pattern.Unit) ([]pattern.Instance, error) {
	if err := d.Bound(); err != nil {
		return nil, err
	}

	var out []pattern.Instance
	for _, t := range namedTypes(unit) {
		if t.Kind != ast.KindClass {
			continue
		}
		m := instanceMethod(t, "clone", 0)
		if m == nil || !delegatesToSuperClone(m.Body) {
			continue
		}
		if unit.Resolver.IsSubtype(unit.Resolver.Declared(t), cloneableType) != resolve.Yes {
			continue
		}
		out = append(out, d.Instance(unit, t, m))
	}
	return out, nil
}

func delegatesToSuperClone(body *ast.Block) bool {
	if body == nil {
		return false
	}

	switch len(body.Stmts) {
	case 1:
		switch s := body.Stmts[0].(type) {
		case *ast.ReturnStmt:
			return isSuperClone(s.Result)
		case *ast.TryStmt:
			return len(s.Resources) == 0 && s.Finally == nil && len(s.Catches) > 0 &&
				delegatesToSuperClone(s.Body) && catchesOnlyThrow(s.Catches)
		case *ast.Block:
			return delegatesToSuperClone(s)
		}

	case 2:
		decl, ok := body.Stmts[0].(*ast.LocalVarStmt)
		if !ok || len(decl.Vars) != 1 || !isSuperClone(decl.Vars[0].Init) {
			return false
		}
		ret, ok := body.Stmts[1].(*ast.ReturnStmt)
		if !ok || ret.Result == nil {
			return false
		}
		id, ok := ast.Uncast(ret.Result).(*ast.Ident)
		return ok && id.Name == decl.Vars[0].Name
	}
	return false
}

func isSuperClone(e ast.Expr) bool {
	if e == nil {
		return false
	}
	return ast.IsSuperCall(ast.Uncast(e), "clone", 0)
}

func catchesOnlyThrow(catches []*ast.CatchClause) bool {
	for _, c := range catches {
		if c.Body == nil || len(c.Body.Stmts) != 1 {
			return false
		}
		if _, ok := c.Body.Stmts[0].(*ast.ThrowStmt); !ok {
			return false
		}
	}
	return true
}
