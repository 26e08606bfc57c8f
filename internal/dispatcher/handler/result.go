package handler

import (
	"fmt"

	"github.com/dshills/selex/internal/engine/selection"
)

// ResultStatus indicates the outcome of an action.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the action had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
	// StatusCancelled indicates the user cancelled the prompt.
	StatusCancelled
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling an action.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for display.
	Message string

	// Regions is the new region set. It is only meaningful when Status is
	// StatusOK; the host must leave its regions untouched otherwise.
	Regions []selection.Region

	// Pattern is the pattern the command ran with, if any.
	Pattern string

	// Data holds handler-specific return data.
	Data map[string]interface{}
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// IsCancelled returns true if the user cancelled the command.
func (r Result) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// Success creates a successful result carrying the new regions.
func Success(regions []selection.Region) Result {
	return Result{Status: StatusOK, Regions: regions}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage creates a no-operation result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...interface{}) Result {
	return Result{
		Status: StatusError,
		Error:  fmt.Errorf(format, args...),
	}
}

// Cancelled creates a cancelled result.
func Cancelled() Result {
	return Result{Status: StatusCancelled}
}

// CancelledWithMessage creates a cancelled result with a message.
func CancelledWithMessage(msg string) Result {
	return Result{Status: StatusCancelled, Message: msg}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithPattern returns a copy of the result recording the pattern used.
func (r Result) WithPattern(pattern string) Result {
	r.Pattern = pattern
	return r
}

// WithData returns a copy of the result with data added.
func (r Result) WithData(key string, value interface{}) Result {
	if r.Data == nil {
		r.Data = make(map[string]interface{})
	}
	r.Data[key] = value
	return r
}

// GetData retrieves a value from the result data.
func (r Result) GetData(key string) (interface{}, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from the result data.
func (r Result) GetDataString(key string) string {
	if v, ok := r.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetDataBool retrieves a bool value from the result data.
func (r Result) GetDataBool(key string) bool {
	if v, ok := r.GetData(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
