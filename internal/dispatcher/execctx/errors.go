package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingSnapshot indicates the document snapshot is required but not set.
	ErrMissingSnapshot = errors.New("execution context: document snapshot is required")

	// ErrMissingPrimary indicates the primary region provider is required but not set.
	ErrMissingPrimary = errors.New("execution context: primary provider is required")

	// ErrMissingPrompt indicates a pattern prompt is required but not set.
	ErrMissingPrompt = errors.New("execution context: prompt is required")

	// ErrMissingModeSetter indicates the mode setter is required but not set.
	ErrMissingModeSetter = errors.New("execution context: mode setter is required")

	// ErrPromptCancelled indicates the user dismissed the pattern prompt.
	// It is a normal outcome, not a failure.
	ErrPromptCancelled = errors.New("prompt cancelled")
)
