package detectors

import (
	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/pattern"
)

// Varargs (SY01) detects methods and constructors declaring a variable-arity
// parameter.
type Varargs struct {
	pattern.Base
}

// Detect implements pattern.Detector.
func (d *Varargs) Detect(unit *pattern.Unit) ([]pattern.Instance, error) {
	if err := d.Bound(); err != nil {
		return nil, err
	}

	var out []pattern.Instance
	ast.Inspect(unit.CompilationUnit, func(owner *ast.TypeDecl, n ast.Node) {
		var params []*ast.Param
		switch decl := n.(type) {
		case *ast.MethodDecl:
			params = decl.Params
		case *ast.ConstructorDecl:
			params = decl.Params
		default:
			return
		}
		if len(params) > 0 && params[len(params)-1].Varargs {
			out = append(out, d.Instance(unit, owner, n))
		}
	})
	return out, nil
}
