package finder

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by NewCoordinator and Run.
var (
	ErrAlreadyStarted = errors.New("search already started")
	ErrNoNeedles      = errors.New("at least one needle is required")
	ErrEmptyNeedle    = errors.New("needle must not be empty")
	ErrNoReporter     = errors.New("a reporter is required")
)

// TraversalError records a filesystem entry the producer had to skip.
type TraversalError struct {
	Path string // Entry that could not be read
	Err  error  // Underlying filesystem error
}

// Error implements the error interface for TraversalError.
func (e *TraversalError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *TraversalError) Unwrap() error {
	return e.Err
}

// FaultError reports a panic recovered from one of the pipeline goroutines.
// A fault stops the whole run.
type FaultError struct {
	Role  string // "producer", "monitor" or the worker's name
	Value any    // Value passed to panic
	Stack []byte // Stack of the panicking goroutine
}

// Error implements the error interface for FaultError.
func (e *FaultError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Role, e.Value)
}

// Unwrap returns the panic value when it is itself an error.
func (e *FaultError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
