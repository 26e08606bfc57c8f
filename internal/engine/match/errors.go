package match

import "errors"

var (
	// ErrInvalidPattern indicates a pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrUnknownDialect indicates an unrecognized regex dialect name.
	ErrUnknownDialect = errors.New("unknown regex dialect")
)
