package loader

import (
	"testing"
	"time"
)

func TestEnvLoader_Load(t *testing.T) {
	loader := NewEnvLoaderFrom("SELEX_", []string{
		"SELEX_LOG_LEVEL=debug",
		"SELEX_REGEX_IGNORE_CASE=true",
		"SELEX_REGEX_TIMEOUT=250ms",
		"SELEX_EDGES_POLICY=offset",
		"PATH=/usr/bin",
	})

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "logging.level"); !ok || val != "debug" {
		t.Errorf("logging.level = %v, want 'debug'", val)
	}
	if val, ok := getByPath(config, "regex.ignoreCase"); !ok || val != true {
		t.Errorf("regex.ignoreCase = %v, want true", val)
	}
	if val, ok := getByPath(config, "regex.timeout"); !ok || val != 250*time.Millisecond {
		t.Errorf("regex.timeout = %v (%T), want 250ms", val, val)
	}
	if val, ok := getByPath(config, "edges.policy"); !ok || val != "offset" {
		t.Errorf("edges.policy = %v, want 'offset'", val)
	}
	if _, ok := getByPath(config, "path"); ok {
		t.Error("unprefixed variables should be ignored")
	}
}

func TestEnvLoader_Mapping(t *testing.T) {
	loader := NewEnvLoaderFrom("SELEX_", []string{"SELEX_DIALECT=re2", "SELEX_THING=x"})
	loader.AddMapping("SELEX_THING", "output.format")

	config, _ := loader.Load()
	if val, _ := getByPath(config, "regex.dialect"); val != "re2" {
		t.Errorf("regex.dialect = %v, want 're2'", val)
	}
	if val, _ := getByPath(config, "output.format"); val != "x" {
		t.Errorf("output.format = %v, want 'x'", val)
	}
}

func TestEnvToPath(t *testing.T) {
	l := NewEnvLoader("SELEX_")
	tests := map[string]string{
		"SELEX_REGEX_IGNORE_CASE": "regex.ignoreCase",
		"SELEX_REGEX_MULTILINE":   "regex.multiline",
		"SELEX_OUTPUT":            "output",
	}
	for env, want := range tests {
		if got := l.envToPath(env); got != want {
			t.Errorf("envToPath(%q) = %q, want %q", env, got, want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"OFF", false},
		{"42", int64(42)},
		{"1s", time.Second},
		{"plain", "plain"},
	}
	for _, tc := range tests {
		if got := parseValue(tc.in); got != tc.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tc.in, got, got, tc.want, tc.want)
		}
	}
}
