// Package detectors contains the built-in pattern detectors.
//
// Detectors are organized by prefix to indicate their group:
//
//   - ob*_*.go: Object rules (cloning, copying, comparison contracts)
//   - sy*_*.go: Syntax rules (language features used idiomatically)
//   - ts*_*.go: Testing rules (test framework idioms)
//   - cc*_*.go: Concurrency rules (thread confinement)
//
// Detectors are not registered as a side effect of importing the package.
// Table returns the factory for each detector keyed by its binding, and the
// registry binds them to catalog definitions:
//
//	reg, err := registry.Load("en", registry.WithTable(detectors.Table()))
package detectors
