package detectors

import (
	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/pattern"
)

var (
	parameterizedTestAnnotations = set("org.junit.jupiter.params.ParameterizedTest")
	runWithAnnotations           = set("org.junit.runner.RunWith")
)

const parameterizedRunner = "org.junit.runners.Parameterized"

// ParameterizedTest (TS01) detects JUnit 5 @ParameterizedTest methods and
// JUnit 4 classes run with @RunWith(Parameterized.class).
type ParameterizedTest struct {
	pattern.Base
}

// Detect implements pattern.Detector.
func (d *ParameterizedTest) Detect(unit *pattern.Unit) ([]pattern.Instance, error) {
	if err := d.Bound(); err != nil {
		return nil, err
	}

	res := unit.Resolver
	var out []pattern.Instance
	ast.Inspect(unit.CompilationUnit, func(owner *ast.TypeDecl, n ast.Node) {
		switch decl := n.(type) {
		case *ast.TypeDecl:
			if decl.Anonymous {
				return
			}
			a := annotatedWith(res, decl, decl.Modifiers, runWithAnnotations)
			if a == nil {
				return
			}
			lit, ok := a.Arg("value").(*ast.ClassLit)
			if ok && lit.Type != nil && qualifiedName(res, decl, lit.Type.Name) == parameterizedRunner {
				out = append(out, d.Instance(unit, decl, decl))
			}

		case *ast.MethodDecl:
			if annotatedWith(res, owner, decl.Modifiers, parameterizedTestAnnotations) != nil {
				out = append(out, d.Instance(unit, owner, decl))
			}
		}
	})
	return out, nil
}
