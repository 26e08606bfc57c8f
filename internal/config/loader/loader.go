// Package loader reads selex configuration sources into nested maps.
//
// File loaders handle TOML and YAML; the env loader maps SELEX_* variables
// onto the same dotted paths. Sources are merged with DeepMerge, later
// sources overriding earlier ones.
package loader

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// FileLoader is the interface for loaders that read from files.
type FileLoader interface {
	Loader
	// LoadFrom reads configuration from a specific path.
	LoadFrom(path string) (map[string]any, error)
	// LoadFromReader reads configuration from a reader.
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ForPath returns the file loader matching path's extension.
func ForPath(fsys FileSystem, path string) (FileLoader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path), nil
	default:
		return nil, &UnsupportedFormatError{Path: path}
	}
}

// readFile reads path, mapping a missing file to nil data.
func readFile(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}
