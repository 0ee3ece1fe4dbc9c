package detectors

import (
	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/pattern"
)

// DefaultCase (SY02) detects switch statements and expressions with an
// explicit default label, in either the colon or the arrow form.
type DefaultCase struct {
	pattern.Base
}

// Detect implements pattern.Detector.
func (d *DefaultCase) Detect(unit *pattern.Unit) ([]pattern.Instance, error) {
	if err := d.Bound(); err != nil {
		return nil, err
	}

	var out []pattern.Instance
	ast.Inspect(unit.CompilationUnit, func(owner *ast.TypeDecl, n ast.Node) {
		if sw, ok := n.(*ast.Switch); ok && sw.HasDefault() {
			out = append(out, d.Instance(unit, owner, sw))
		}
	})
	return out, nil
}
