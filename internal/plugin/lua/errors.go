package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoHost is returned when the selex module is registered without a host.
	ErrNoHost = errors.New("lua module has no host")
)
