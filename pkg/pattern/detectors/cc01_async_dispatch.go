package detectors

import (
	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/pattern"
	"github.com/leapstack-labs/kudos/pkg/resolve"
)

// dispatchMethods maps UI toolkit types to their event thread dispatch
// methods.
var dispatchMethods = map[string]map[string]bool{
	"javax.swing.SwingUtilities":  set("invokeLater", "invokeAndWait"),
	"java.awt.EventQueue":         set("invokeLater", "invokeAndWait"),
	"javafx.application.Platform": set("runLater"),
}

// AsyncDispatch (CC01) detects work handed to a UI toolkit's event thread.
// The call may be qualified by a simple or fully qualified type name or
// brought in by a static import.
type AsyncDispatch struct {
	pattern.Base
}

// Detect implements pattern.Detector.
func (d *AsyncDispatch) Detect(unit *pattern.Unit) ([]pattern.Instance, error) {
	if err := d.Bound(); err != nil {
		return nil, err
	}

	res := unit.Resolver
	var out []pattern.Instance
	ast.Inspect(unit.CompilationUnit, func(owner *ast.TypeDecl, n ast.Node) {
		call, ok := n.(*ast.MethodCall)
		if !ok || len(call.Args) != 1 {
			return
		}

		var r resolve.Result
		if call.X == nil {
			r = res.ResolveStatic(owner, call.Name)
		} else {
			name := ast.DottedName(call.X)
			if name == "" {
				return
			}
			r = res.ResolveType(owner, name)
		}
		if !r.Resolved() {
			return
		}
		if dispatchMethods[r.Type.Name][call.Name] {
			out = append(out, d.Instance(unit, owner, call))
		}
	})
	return out, nil
}
