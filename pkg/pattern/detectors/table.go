package detectors

import "github.com/leapstack-labs/kudos/pkg/pattern"

// Table returns a fresh factory table of every built-in detector, keyed by
// binding.
func Table() map[string]pattern.Factory {
	return map[string]pattern.Factory{
		"object.clone_blueprint":       func() (pattern.Detector, error) { return &CloneBlueprint{}, nil },
		"object.copy_constructor":      func() (pattern.Detector, error) { return &CopyConstructor{}, nil },
		"object.compare_to_and_equals": func() (pattern.Detector, error) { return &CompareToAndEquals{}, nil },
		"syntax.varargs":               func() (pattern.Detector, error) { return &Varargs{}, nil },
		"syntax.default_case":          func() (pattern.Detector, error) { return &DefaultCase{}, nil },
		"testing.parameterized_test":   func() (pattern.Detector, error) { return &ParameterizedTest{}, nil },
		"testing.setup_teardown":       func() (pattern.Detector, error) { return &SetupTeardown{}, nil },
		"concurrency.async_dispatch":   func() (pattern.Detector, error) { return &AsyncDispatch{}, nil },
	}
}
