package config

import (
	"errors"
	"fmt"

	"github.com/dshills/selex/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting path doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates a setting holds an unacceptable value.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
