package pattern

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrInvalidInput is returned when an input is not a recognized source
	// artifact. It is raised before any parsing happens.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDetectorNotFound is returned when looking up a definition that has
	// no registered detector.
	ErrDetectorNotFound = errors.New("detector not found")

	// ErrUnbound is returned by a detector used before Bind.
	ErrUnbound = errors.New("detector is not bound to a definition")

	// ErrAlreadyBound is returned when binding a detector twice.
	ErrAlreadyBound = errors.New("detector is already bound")
)

// BindingError reports a definition whose detector could not be created or
// bound. It is fatal to registry construction.
type BindingError struct {
	DefinitionID string
	Binding      string
	Err          error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("binding %q for pattern %s: %v", e.Binding, e.DefinitionID, e.Err)
}

func (e *BindingError) Unwrap() error { return e.Err }

// DetectorError reports an internal fault of one detector on one file. The
// engine records it as a diagnostic and keeps going.
type DetectorError struct {
	PatternID string
	Path      string
	Err       error
	Panicked  bool
}

func (e *DetectorError) Error() string {
	if e.Panicked {
		return fmt.Sprintf("detector %s panicked on %s: %v", e.PatternID, e.Path, e.Err)
	}
	return fmt.Sprintf("detector %s failed on %s: %v", e.PatternID, e.Path, e.Err)
}

func (e *DetectorError) Unwrap() error { return e.Err }
