package match

import (
	"fmt"
	"strings"
	"time"
)

// Dialect selects the regular expression syntax and engine.
type Dialect uint8

const (
	// ECMAScript accepts JavaScript RegExp syntax (backtracking engine).
	ECMAScript Dialect = iota

	// RE2 accepts Go regexp syntax (linear-time engine).
	RE2
)

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case ECMAScript:
		return "ecmascript"
	case RE2:
		return "re2"
	default:
		return "unknown"
	}
}

// ParseDialect parses a dialect name. Matching is case-insensitive and
// "ecma", "js" and "go" are accepted as aliases.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ecmascript", "ecma", "js":
		return ECMAScript, nil
	case "re2", "go":
		return RE2, nil
	default:
		return ECMAScript, fmt.Errorf("%w: %q", ErrUnknownDialect, s)
	}
}

// Options configures pattern compilation.
type Options struct {
	// Dialect selects the syntax and engine.
	Dialect Dialect

	// IgnoreCase enables case-insensitive matching.
	IgnoreCase bool

	// Multiline makes ^ and $ match at line boundaries.
	Multiline bool

	// Timeout bounds a single match attempt. Zero means no limit.
	// Only the ECMAScript engine honors it; RE2 runs in linear time.
	Timeout time.Duration
}

// DefaultOptions returns the default compile options.
func DefaultOptions() Options {
	return Options{Dialect: ECMAScript}
}
