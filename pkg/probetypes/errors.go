// This file contains the error taxonomy for the examination machinery.
// Configuration-time mistakes (registering, editing parameters) surface
// as these typed errors; per-event analysis failures are wrapped in
// AnalysisError and reported without ending the loop.
package probetypes

import (
	"errors"
	"fmt"
)

// ErrNoDataLoaded is returned when the examination loop is started
// without a frame array available.
var ErrNoDataLoaded = errors.New("no image data loaded")

// UnknownKeyError reports a key press with no registry binding.
type UnknownKeyError struct {
	Key rune
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("no analysis function bound to key %q", e.Key)
}

// DuplicateKeyError reports an attempt to bind an already-bound key.
type DuplicateKeyError struct {
	Key rune
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("key %q is already registered", e.Key)
}

// ReservedKeyError reports an attempt to bind a loop-control key.
type ReservedKeyError struct {
	Key rune
}

func (e *ReservedKeyError) Error() string {
	return fmt.Sprintf("key %q is reserved for loop control", e.Key)
}

// UnknownOptionError reports access to an option a parameter set does
// not declare.
type UnknownOptionError struct {
	Set  string
	Name string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("parameter set %s has no option %q", e.Set, e.Name)
}

// InvalidParameterError reports a value rejected by an option's
// declared kind.
type InvalidParameterError struct {
	Set    string
	Name   string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid value for %s.%s: %s", e.Set, e.Name, e.Reason)
}

// AnalysisError wraps any failure raised inside an analysis function.
// It is absorbed at the invoker boundary and reported, never fatal.
type AnalysisError struct {
	Function string
	Err      error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis function %s failed: %v", e.Function, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
