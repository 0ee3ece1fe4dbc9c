// Package pattern defines the contracts shared by pattern definitions,
// detectors and the engine that runs them.
//
// # Architecture
//
// The pattern subsystem has three layers:
//
//  1. Root package (pkg/pattern/): definitions, detected instances, the
//     Detector interface and its Base implementation, error kinds
//  2. Catalog (pkg/pattern/catalog/): the embedded, localized catalog of
//     pattern definitions
//  3. Detectors (pkg/pattern/detectors/) and the registry
//     (pkg/pattern/registry/) that binds every definition to one detector
//
// # Detector Binding
//
// Detectors are created from an explicit factory table keyed by the stable
// binding identifier written in the catalog:
//
//	reg, err := registry.Load("de")
//	for _, d := range reg.Detectors() {
//		instances, err := d.Detect(unit)
//		...
//	}
//
// # Pattern Categories
//
// Every positive pattern names the kind of negative pattern it replaces:
//   - bug: the alternative is a likely defect
//   - smell: the alternative is a maintainability problem
//   - error: the alternative fails at runtime
//   - style: the alternative is merely less idiomatic
//
// # Writing a Detector
//
// Embed Base and implement Detect:
//
//	type myDetector struct{ pattern.Base }
//
//	func (d *myDetector) Detect(unit *pattern.Unit) ([]pattern.Instance, error) {
//		if err := d.Bound(); err != nil {
//			return nil, err
//		}
//		...
//	}
package pattern
