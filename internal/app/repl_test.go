package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/selex/internal/input/mode"
)

func TestREPL_Run(t *testing.T) {
	input := strings.Join([]string{
		"select \\d+",
		"show",
		"quit",
		"select never-reached",
	}, "\n")
	a := newTestApp(t, Options{Text: "abc123def456", Regions: "0:12", Input: strings.NewReader(input)})

	if err := NewREPL(a.Application).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := a.Session().Format(); got != "3:6,9:12" {
		t.Errorf("expected 3:6,9:12, got %s", got)
	}
	out := a.out.String()
	if strings.Count(out, replPrompt) != 3 {
		t.Errorf("expected 3 prompts, got %q", out)
	}
	if !strings.Contains(out, `"456"`) {
		t.Errorf("expected region text in output, got %q", out)
	}
}

func TestREPL_EOFEndsLoop(t *testing.T) {
	a := newTestApp(t, Options{Text: "a b", Regions: "0:3", Input: strings.NewReader("split  ")})

	if err := NewREPL(a.Application).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// The pattern is a single space: the rest of the line after the command.
	if got := a.Session().Format(); got != "0:1,2:3" {
		t.Errorf("expected 0:1,2:3, got %s", got)
	}
}

func TestREPL_PromptsWhenPatternMissing(t *testing.T) {
	input := "keep\nfoo\nshow\n"
	a := newTestApp(t, Options{Text: "foo\nbar", Regions: "0:3,4:7", Input: strings.NewReader(input)})

	if err := NewREPL(a.Application).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := a.Session().Format(); got != "0:3" {
		t.Errorf("expected 0:3, got %s", got)
	}
	if !strings.Contains(a.out.String(), "Selection RegExp: ") {
		t.Errorf("expected pattern prompt, got %q", a.out.String())
	}
	if a.Modes().CurrentName() != mode.ModeNormal {
		t.Errorf("expected normal mode, got %s", a.Modes().CurrentName())
	}
}

func TestREPL_Execute(t *testing.T) {
	a := newTestApp(t, Options{Text: "ab\ncd\nef", Regions: "1:7"})
	r := NewREPL(a.Application)
	ctx := context.Background()

	steps := []struct {
		line string
		want string
	}{
		{"lines", "1:2,6:7,3:5"},
		{"clear-main", "6:7,3:5"},
		{"set 0:8", "0:8"},
		{"edges", "0:1,7:8"},
		{"primary 1", "0:1,7:8"},
		{"clear", "7:8"},
		{"set 0:2,3:5,6:8", "0:2,3:5,6:8"},
		{"drop c", "0:2,6:8"},
		{"keep ^e", "6:8"},
		{"set 0:8", "0:8"},
		{"split \\n", "0:2,3:5,6:8"},
	}

	for _, step := range steps {
		if err := r.Execute(ctx, step.line); err != nil {
			t.Fatalf("%q: Execute() error = %v", step.line, err)
		}
		if got := a.Session().Format(); got != step.want {
			t.Fatalf("%q: expected %s, got %s", step.line, step.want, got)
		}
	}
}

func TestREPL_Errors(t *testing.T) {
	a := newTestApp(t, Options{Text: "abc", Regions: "0:3"})
	r := NewREPL(a.Application)
	ctx := context.Background()

	if err := r.Execute(ctx, "bogus"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
	if err := r.Execute(ctx, "set"); err == nil {
		t.Error("expected usage error for set")
	}
	if err := r.Execute(ctx, "primary x"); err == nil {
		t.Error("expected error for bad index")
	}
	if err := r.Execute(ctx, "primary 4"); !errors.Is(err, ErrPrimaryOutOfRange) {
		t.Errorf("expected ErrPrimaryOutOfRange, got %v", err)
	}
	if err := r.Execute(ctx, "quit"); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}

	// An invalid pattern is reported as a result, not a REPL error.
	a.out.Reset()
	if err := r.Execute(ctx, "select ("); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(a.out.String(), "error: ") {
		t.Errorf("expected error status line, got %q", a.out.String())
	}
	if got := a.Session().Format(); got != "0:3" {
		t.Errorf("expected regions untouched, got %s", got)
	}
}

func TestREPL_Config(t *testing.T) {
	a := newTestApp(t, Options{Text: "abc"})
	r := NewREPL(a.Application)
	ctx := context.Background()

	if err := r.Execute(ctx, "config"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(a.out.String(), "regex.dialect = ecmascript") {
		t.Errorf("expected settings listing, got %q", a.out.String())
	}

	if err := r.Execute(ctx, "config edges.policy offset"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if a.Config().Edges.Policy != "offset" {
		t.Errorf("expected offset policy, got %s", a.Config().Edges.Policy)
	}

	a.out.Reset()
	if err := r.Execute(ctx, "config prompt.text"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if a.out.String() != "prompt.text = Selection RegExp\n" {
		t.Errorf("unexpected output %q", a.out.String())
	}

	if err := r.Execute(ctx, "config nope.nope"); err == nil {
		t.Error("expected error for unknown setting")
	}
}

func TestREPL_LuaAndStats(t *testing.T) {
	a := newTestApp(t, Options{Text: "x y z", Regions: "0:5"})
	r := NewREPL(a.Application)
	ctx := context.Background()

	if err := r.Execute(ctx, `lua selex.select("[xz]")`); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := a.Session().Format(); got != "0:1,4:5" {
		t.Errorf("expected 0:1,4:5, got %s", got)
	}

	a.out.Reset()
	if err := r.Execute(ctx, "stats"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(a.out.String(), "selections.select") {
		t.Errorf("expected select in stats, got %q", a.out.String())
	}

	a.out.Reset()
	if err := r.Execute(ctx, "help"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(a.out.String(), "clear-main") {
		t.Errorf("expected command list, got %q", a.out.String())
	}
}
