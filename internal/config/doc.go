// Package config provides the configuration system for selex.
//
// Settings are layered, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A config file, TOML or YAML by extension
//  3. SELEX_* environment variables
//  4. Command line flags, applied by the caller with Set
//
// Settings are addressed by dotted paths such as "regex.dialect" or
// "edges.policy". The watcher subpackage reloads the file when it changes.
package config
