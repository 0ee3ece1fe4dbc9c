package detectors

import (
	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/pattern"
	"github.com/leapstack-labs/kudos/pkg/resolve"
)

// CompareToAndEquals (OB03) detects Comparable types that also override
// equals(Object), so ordering and equality are defined together.
//
// compareTo may be inherited from any resolvable ancestor; equals must come
// from the type itself or an ancestor other than Object. At least one of the
// two must be declared by the type; subclasses inheriting both are skipped.
type CompareToAndEquals struct {
	pattern.Base
}

// Detect implements pattern.Detector.
func (d *CompareToAndEquals) Detect(unit *pattern.Unit) ([]pattern.Instance, error) {
	if err := d.Bound(); err != nil {
		return nil, err
	}

	res := unit.Resolver
	var out []pattern.Instance
	for _, t := range namedTypes(unit) {
		if t.Kind == ast.KindInterface || t.Kind == ast.KindAnnotation {
			continue
		}
		self := res.Declared(t)
		if res.IsSubtype(self, comparableType) != resolve.Yes {
			continue
		}

		ownCompare := instanceMethod(t, "compareTo", 1) != nil
		ownEquals := declaresEquals(t)
		if !ownCompare && !ownEquals {
			continue
		}

		ancestors, _ := res.Ancestors(self)
		hasCompare := ownCompare || inherits(res, ancestors, func(m resolve.Method) bool {
			return m.Name == "compareTo" && m.Arity() == 1 && !m.Abstract()
		})
		hasEquals := ownEquals || inherits(res, ancestors, func(m resolve.Method) bool {
			return m.Owner.Name != objectType && isEqualsSignature(m) && !m.Abstract()
		})
		if hasCompare && hasEquals {
			out = append(out, d.Instance(unit, t, t))
		}
	}
	return out, nil
}

func declaresEquals(t *ast.TypeDecl) bool {
	m := instanceMethod(t, "equals", 1)
	if m == nil {
		return false
	}
	name := m.Params[0].Type.String()
	return name == "Object" || name == objectType
}

func isEqualsSignature(m resolve.Method) bool {
	if m.Name != "equals" || m.Arity() != 1 {
		return false
	}
	return m.Params[0] == "Object" || m.Params[0] == objectType
}

func inherits(res resolve.Resolver, ancestors []*resolve.Type, match func(resolve.Method) bool) bool {
	for _, a := range ancestors {
		for _, m := range res.Methods(a) {
			if match(m) {
				return true
			}
		}
	}
	return false
}
