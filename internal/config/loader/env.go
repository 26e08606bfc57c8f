package loader

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix is the prefix of selex environment variables.
const EnvPrefix = "SELEX_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "SELEX_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "SELEX_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
	}
}

// NewEnvLoaderFrom creates a loader reading from a fixed environment, in
// os.Environ's "KEY=value" form.
func NewEnvLoaderFrom(prefix string, env []string) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.environ = func() []string { return env }
	return l
}

// defaultEnvMapping returns the short aliases that do not follow the
// SECTION_SETTING naming.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"SELEX_LOG_LEVEL": "logging.level",
		"SELEX_DIALECT":   "regex.dialect",
		"SELEX_FORMAT":    "output.format",
		"SELEX_PROMPT":    "prompt.text",
	}
}

// Load reads environment variables and returns a configuration map.
// Empty values are treated as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			// SELEX_REGEX_IGNORE_CASE -> regex.ignoreCase
			path = l.envToPath(name)
		}
		setByPath(config, path, parseValue(value))
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// envToPath converts SELEX_REGEX_IGNORE_CASE to regex.ignoreCase.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")

	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	setting := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return section + "." + setting
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return s
}
