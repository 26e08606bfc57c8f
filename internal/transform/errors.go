package transform

import "errors"

// Errors returned by Transformer.Apply.
var (
	// ErrUnknownMode indicates an unrecognized transformation mode.
	ErrUnknownMode = errors.New("unknown transform mode")

	// ErrMissingSnapshot indicates the request has no document snapshot.
	ErrMissingSnapshot = errors.New("transform: snapshot is required")

	// ErrMissingPattern indicates a pattern mode was requested without a pattern.
	ErrMissingPattern = errors.New("transform: pattern is required")

	// ErrMissingPrimary indicates a mode needing the primary region has no provider.
	ErrMissingPrimary = errors.New("transform: primary region provider is required")
)
