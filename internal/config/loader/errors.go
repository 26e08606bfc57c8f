package loader

import (
	"fmt"
	"path/filepath"
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError reports a config file with an unknown extension.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported config format %q for %s (want .toml, .yaml or .yml)", filepath.Ext(e.Path), e.Path)
}
