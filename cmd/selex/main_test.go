package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Select(t *testing.T) {
	code, out, errOut := runCLI(t, "", "-text", "abc123def456", "-r", "0:12", "-m", "select", "-p", `\d+`)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	if !strings.Contains(out, `3:6  0:3-0:6  "123"`) || !strings.Contains(out, `9:12  0:9-0:12  "456"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRun_DocumentFromStdin(t *testing.T) {
	code, out, errOut := runCLI(t, "one\ntwo", "-r", "0:7", "-m", "lines", "-format", "json")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	if !strings.Contains(out, `"text": "one"`) || !strings.Contains(out, `"text": "two"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRun_FileArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("x-y"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "", "-r", "0:3", "-m", "split", "-p", "-", path)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	if !strings.Contains(out, `"x"`) || !strings.Contains(out, `"y"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRun_Script(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.lua")
	if err := os.WriteFile(path, []byte(`selex.select("b+")`), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "", "-text", "abbba", "-r", "0:5", "-s", path)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	if !strings.Contains(out, `1:4  0:1-0:4  "bbb"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRun_InvalidPattern(t *testing.T) {
	code, out, _ := runCLI(t, "", "-text", "abc", "-r", "0:3", "-m", "select", "-p", "(")
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.HasPrefix(out, "error: ") {
		t.Errorf("expected error status, got %q", out)
	}
}

func TestRun_Interactive(t *testing.T) {
	code, out, errOut := runCLI(t, "select b\nquit\n", "-text", "abc", "-r", "0:3", "-i")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	if !strings.Contains(out, `1:2  0:1-0:2  "b"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope"}},
		{"unknown mode", []string{"-text", "a", "-m", "reverse"}},
		{"pattern without mode", []string{"-text", "a", "-p", "a"}},
		{"text and file", []string{"-text", "a", "-f", "x.txt"}},
		{"two files", []string{"a.txt", "b.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, "", tt.args...)
			if code != 2 {
				t.Errorf("expected exit 2, got %d", code)
			}
		})
	}
}

func TestRun_VersionAndHelp(t *testing.T) {
	code, out, _ := runCLI(t, "", "-v")
	if code != 0 || !strings.HasPrefix(out, "selex dev") {
		t.Errorf("expected version output, got %d %q", code, out)
	}

	code, _, errOut := runCLI(t, "", "-h")
	if code != 0 || !strings.Contains(errOut, "Usage: selex") {
		t.Errorf("expected usage, got %d %q", code, errOut)
	}
}
