// Package app provides the selex host: a session holding a document and its
// regions, the line prompt, output formatting, the REPL and the wiring that
// connects them to the dispatcher.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the REPL should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoRegions indicates an attempt to leave a session without regions.
	ErrNoRegions = errors.New("session requires at least one region")

	// ErrPrimaryOutOfRange indicates an invalid primary index.
	ErrPrimaryOutOfRange = errors.New("primary index out of range")

	// ErrRegionOutOfRange indicates an invalid region index.
	ErrRegionOutOfRange = errors.New("region index out of range")

	// ErrUnknownCommand indicates a REPL command that does not exist.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnknownFormat indicates an unsupported output format.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrClosed indicates use of a closed application.
	ErrClosed = errors.New("application closed")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "load", "script")
	Target string // Target of the operation (e.g., file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
