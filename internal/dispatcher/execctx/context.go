// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/selex/internal/engine/match"
	"github.com/dshills/selex/internal/engine/selection"
	"github.com/dshills/selex/internal/engine/text"
	"github.com/dshills/selex/internal/input/mode"
	"github.com/dshills/selex/internal/transform"
)

// Logger is the logging surface handlers write to.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ExecutionContext provides context for action execution.
// It carries the host collaborators a selection command needs.
type ExecutionContext struct {
	// ID correlates log lines of one dispatched command.
	ID string

	// Snapshot is the document the regions address.
	Snapshot text.Snapshot

	// Regions is the current region set.
	Regions []selection.Region

	// Primary reports the host's primary region.
	Primary transform.PrimaryProvider

	// Prompt obtains patterns from the user.
	Prompt Prompt

	// PromptText overrides DefaultPromptText.
	PromptText string

	// Modes reflects Normal/Awaiting state in the host.
	Modes mode.Setter

	// Logger receives command diagnostics. Nil discards them.
	Logger Logger

	// MatchOptions configures pattern compilation.
	MatchOptions match.Options

	// Transformer runs the region transformations.
	Transformer *transform.Transformer

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		MatchOptions: match.DefaultOptions(),
		Transformer:  transform.New(transform.Options{}),
		Data:         make(map[string]interface{}),
	}
}

// WithSnapshot returns the context with the snapshot and regions set.
func (ctx *ExecutionContext) WithSnapshot(snap text.Snapshot, regions []selection.Region) *ExecutionContext {
	ctx.Snapshot = snap
	ctx.Regions = regions
	return ctx
}

// WithPrimary returns the context with the primary provider set.
func (ctx *ExecutionContext) WithPrimary(p transform.PrimaryProvider) *ExecutionContext {
	ctx.Primary = p
	return ctx
}

// WithPrompt returns the context with the prompt and mode setter set.
func (ctx *ExecutionContext) WithPrompt(p Prompt, modes mode.Setter) *ExecutionContext {
	ctx.Prompt = p
	ctx.Modes = modes
	return ctx
}

// WithLogger returns the context with the logger set.
func (ctx *ExecutionContext) WithLogger(l Logger) *ExecutionContext {
	ctx.Logger = l
	return ctx
}

// WithMatchOptions returns the context with the match options set.
func (ctx *ExecutionContext) WithMatchOptions(opts match.Options) *ExecutionContext {
	ctx.MatchOptions = opts
	return ctx
}

// WithTransformer returns the context with the transformer set.
func (ctx *ExecutionContext) WithTransformer(t *transform.Transformer) *ExecutionContext {
	ctx.Transformer = t
	return ctx
}

// Log returns the context logger, never nil.
func (ctx *ExecutionContext) Log() Logger {
	if ctx.Logger == nil {
		return nopLogger{}
	}
	return ctx.Logger
}

// GetPromptText returns the prompt text to show.
func (ctx *ExecutionContext) GetPromptText() string {
	if ctx.PromptText == "" {
		return DefaultPromptText
	}
	return ctx.PromptText
}

// SetData stores handler-specific data.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves handler-specific data.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context has a document to work on.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Snapshot == nil {
		return ErrMissingSnapshot
	}
	return nil
}

// ValidateForPrimary checks that the context can answer primary queries.
func (ctx *ExecutionContext) ValidateForPrimary() error {
	if ctx.Primary == nil {
		return ErrMissingPrimary
	}
	return nil
}

// ValidateForPrompt checks that the context can prompt for a pattern.
func (ctx *ExecutionContext) ValidateForPrompt() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.Prompt == nil {
		return ErrMissingPrompt
	}
	if ctx.Modes == nil {
		return ErrMissingModeSetter
	}
	return nil
}
