package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/selex/internal/config/loader"
	"github.com/dshills/selex/internal/engine/match"
	"github.com/dshills/selex/internal/transform"
)

// Config holds every selex setting.
type Config struct {
	Regex   RegexConfig   `toml:"regex" yaml:"regex" json:"regex"`
	Prompt  PromptConfig  `toml:"prompt" yaml:"prompt" json:"prompt"`
	Edges   EdgesConfig   `toml:"edges" yaml:"edges" json:"edges"`
	Logging LoggingConfig `toml:"logging" yaml:"logging" json:"logging"`
	Output  OutputConfig  `toml:"output" yaml:"output" json:"output"`
}

// RegexConfig configures pattern compilation.
type RegexConfig struct {
	// Dialect is "ecmascript" or "re2".
	Dialect    string        `toml:"dialect" yaml:"dialect" json:"dialect"`
	IgnoreCase bool          `toml:"ignoreCase" yaml:"ignoreCase" json:"ignoreCase"`
	Multiline  bool          `toml:"multiline" yaml:"multiline" json:"multiline"`
	Timeout    time.Duration `toml:"timeout" yaml:"timeout" json:"timeout"`
}

// PromptConfig configures the pattern prompt.
type PromptConfig struct {
	Text string `toml:"text" yaml:"text" json:"text"`
}

// EdgesConfig configures selectFirstLast.
type EdgesConfig struct {
	// Policy is "column" or "offset".
	Policy string `toml:"policy" yaml:"policy" json:"policy"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level" json:"level"`
}

// OutputConfig configures how regions are printed.
type OutputConfig struct {
	// Format is "text", "json" or "yaml".
	Format string `toml:"format" yaml:"format" json:"format"`
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Regex: RegexConfig{
			Dialect: match.ECMAScript.String(),
		},
		Prompt: PromptConfig{
			Text: "Selection RegExp",
		},
		Edges: EdgesConfig{
			Policy: transform.EdgeColumn.String(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

// LoadOptions controls Load.
type LoadOptions struct {
	// Path is the config file. Empty skips the file layer; a missing file
	// is not an error.
	Path string

	// FS reads the file. Defaults to the OS file system.
	FS loader.FileSystem

	// Env overrides the process environment, in "KEY=value" form.
	Env []string

	// SkipEnv disables the environment layer.
	SkipEnv bool
}

// Load builds a configuration from defaults, the config file and the
// environment, then validates it.
func Load(opts LoadOptions) (*Config, error) {
	values := make(map[string]any)

	if opts.Path != "" {
		fsys := opts.FS
		if fsys == nil {
			fsys = loader.DefaultFS()
		}
		fl, err := loader.ForPath(fsys, opts.Path)
		if err != nil {
			return nil, err
		}
		fileValues, err := fl.Load()
		if err != nil {
			return nil, err
		}
		loader.DeepMerge(values, fileValues)
	}

	if !opts.SkipEnv {
		env := loader.NewEnvLoader(loader.EnvPrefix)
		if opts.Env != nil {
			env = loader.NewEnvLoaderFrom(loader.EnvPrefix, opts.Env)
		}
		envValues, err := env.Load()
		if err != nil {
			return nil, err
		}
		loader.DeepMerge(values, envValues)
	}

	cfg := Default()
	if err := cfg.Apply(values); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply sets every leaf of a nested settings map.
func (c *Config) Apply(values map[string]any) error {
	flat := loader.Flatten(values)

	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if err := c.SetValue(p, flat[p]); err != nil {
			return err
		}
	}
	return nil
}

// SetValue sets one setting from a decoded value.
func (c *Config) SetValue(path string, value any) error {
	s, ok := lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	if err := s.set(c, value); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Set sets one setting from its string form, as typed on a command line.
func (c *Config) Set(path, value string) error {
	s, ok := lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	next := c.Clone()
	if err := next.SetValue(path, s.parse(value)); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = *next
	return nil
}

// Get returns the value of one setting.
func (c *Config) Get(path string) (any, error) {
	s, ok := lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return s.get(c), nil
}

// Paths returns every setting path in display order.
func Paths() []string {
	out := make([]string, len(settings))
	for i, s := range settings {
		out[i] = s.path
	}
	return out
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	if _, err := match.ParseDialect(c.Regex.Dialect); err != nil {
		return &ValidationError{Path: "regex.dialect", Message: "must be ecmascript or re2", Value: c.Regex.Dialect}
	}
	if c.Regex.Timeout < 0 {
		return &ValidationError{Path: "regex.timeout", Message: "must not be negative", Value: c.Regex.Timeout}
	}
	if _, err := transform.ParseEdgePolicy(c.Edges.Policy); err != nil {
		return &ValidationError{Path: "edges.policy", Message: "must be column or offset", Value: c.Edges.Policy}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Message: "must be debug, info, warn or error", Value: c.Logging.Level}
	}
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return &ValidationError{Path: "output.format", Message: "must be text, json or yaml", Value: c.Output.Format}
	}
	return nil
}

// MatchOptions returns the pattern compile options.
func (c *Config) MatchOptions() (match.Options, error) {
	dialect, err := match.ParseDialect(c.Regex.Dialect)
	if err != nil {
		return match.Options{}, err
	}
	return match.Options{
		Dialect:    dialect,
		IgnoreCase: c.Regex.IgnoreCase,
		Multiline:  c.Regex.Multiline,
		Timeout:    c.Regex.Timeout,
	}, nil
}

// TransformOptions returns the transformer options.
func (c *Config) TransformOptions() (transform.Options, error) {
	policy, err := transform.ParseEdgePolicy(c.Edges.Policy)
	if err != nil {
		return transform.Options{}, err
	}
	return transform.Options{EdgePolicy: policy}, nil
}

type setting struct {
	path  string
	get   func(*Config) any
	set   func(*Config, any) error
	parse func(string) any
}

var settings = []setting{
	stringSetting("regex.dialect", func(c *Config) *string { return &c.Regex.Dialect }),
	boolSetting("regex.ignoreCase", func(c *Config) *bool { return &c.Regex.IgnoreCase }),
	boolSetting("regex.multiline", func(c *Config) *bool { return &c.Regex.Multiline }),
	durationSetting("regex.timeout", func(c *Config) *time.Duration { return &c.Regex.Timeout }),
	stringSetting("prompt.text", func(c *Config) *string { return &c.Prompt.Text }),
	stringSetting("edges.policy", func(c *Config) *string { return &c.Edges.Policy }),
	stringSetting("logging.level", func(c *Config) *string { return &c.Logging.Level }),
	stringSetting("output.format", func(c *Config) *string { return &c.Output.Format }),
}

func lookup(path string) (setting, bool) {
	for _, s := range settings {
		if strings.EqualFold(s.path, path) {
			return s, true
		}
	}
	return setting{}, false
}

func stringSetting(path string, field func(*Config) *string) setting {
	return setting{
		path: path,
		get:  func(c *Config) any { return *field(c) },
		set: func(c *Config, v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: want string, got %T", ErrTypeMismatch, v)
			}
			*field(c) = s
			return nil
		},
		parse: func(s string) any { return s },
	}
}

func boolSetting(path string, field func(*Config) *bool) setting {
	return setting{
		path: path,
		get:  func(c *Config) any { return *field(c) },
		set: func(c *Config, v any) error {
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("%w: want bool, got %T", ErrTypeMismatch, v)
			}
			*field(c) = b
			return nil
		},
		parse: func(s string) any {
			if b, err := strconv.ParseBool(s); err == nil {
				return b
			}
			return s
		},
	}
}

// durationSetting accepts durations, duration strings, and integer
// milliseconds.
func durationSetting(path string, field func(*Config) *time.Duration) setting {
	return setting{
		path: path,
		get:  func(c *Config) any { return *field(c) },
		set: func(c *Config, v any) error {
			switch d := v.(type) {
			case time.Duration:
				*field(c) = d
			case string:
				parsed, err := time.ParseDuration(d)
				if err != nil {
					return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
				}
				*field(c) = parsed
			case int:
				*field(c) = time.Duration(d) * time.Millisecond
			case int64:
				*field(c) = time.Duration(d) * time.Millisecond
			default:
				return fmt.Errorf("%w: want duration, got %T", ErrTypeMismatch, v)
			}
			return nil
		},
		parse: func(s string) any { return s },
	}
}
