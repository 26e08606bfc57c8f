package execctx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/selex/internal/dispatcher/execctx"
	"github.com/dshills/selex/internal/engine/match"
	"github.com/dshills/selex/internal/engine/selection"
	"github.com/dshills/selex/internal/engine/text"
	"github.com/dshills/selex/internal/input/mode"
	"github.com/dshills/selex/internal/transform"
)

func TestNew(t *testing.T) {
	ctx := execctx.New()

	if ctx.Data == nil {
		t.Error("expected Data to be initialized")
	}
	if ctx.Transformer == nil {
		t.Error("expected a default transformer")
	}
	if ctx.MatchOptions.Dialect != match.ECMAScript {
		t.Errorf("expected ECMAScript dialect, got %v", ctx.MatchOptions.Dialect)
	}
	if ctx.GetPromptText() != execctx.DefaultPromptText {
		t.Errorf("expected default prompt text, got %q", ctx.GetPromptText())
	}
}

func TestValidate(t *testing.T) {
	ctx := execctx.New()
	if err := ctx.Validate(); !errors.Is(err, execctx.ErrMissingSnapshot) {
		t.Errorf("expected ErrMissingSnapshot, got %v", err)
	}
	if err := ctx.ValidateForPrimary(); !errors.Is(err, execctx.ErrMissingPrimary) {
		t.Errorf("expected ErrMissingPrimary, got %v", err)
	}

	doc := text.NewDocument("abc")
	ctx.WithSnapshot(doc, []selection.Region{selection.FromOffsets(doc, 0, 3)})
	if err := ctx.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ctx.ValidateForPrompt(); !errors.Is(err, execctx.ErrMissingPrompt) {
		t.Errorf("expected ErrMissingPrompt, got %v", err)
	}

	ctx.Prompt = execctx.NewStaticPrompt("a")
	if err := ctx.ValidateForPrompt(); !errors.Is(err, execctx.ErrMissingModeSetter) {
		t.Errorf("expected ErrMissingModeSetter, got %v", err)
	}

	ctx.WithPrompt(ctx.Prompt, mode.SetterFunc(func(string) error { return nil }))
	if err := ctx.ValidateForPrompt(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	ctx.WithPrimary(transform.FixedPrimary(selection.Region{}))
	if err := ctx.ValidateForPrimary(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWithLoggerNil(t *testing.T) {
	ctx := execctx.New().WithLogger(nil)
	if ctx.Log() == nil {
		t.Fatal("Log should never return nil")
	}
	ctx.Log().Debug("discarded %d", 1)
}

func TestData(t *testing.T) {
	ctx := &execctx.ExecutionContext{}
	if _, ok := ctx.GetData("k"); ok {
		t.Error("expected no data on zero context")
	}
	ctx.SetData("k", 42)
	v, ok := ctx.GetData("k")
	if !ok || v.(int) != 42 {
		t.Errorf("expected 42, got %v", v)
	}
}

func TestStaticPrompt(t *testing.T) {
	p := execctx.NewStaticPrompt("(", "a+")
	req := execctx.PromptRequest{
		Text: "pattern",
		Validate: func(in string) error {
			return match.Validate(in, match.DefaultOptions())
		},
	}

	got, err := p.Request(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a+" {
		t.Errorf("expected invalid input to be skipped, got %q", got)
	}

	if _, err := p.Request(context.Background(), req); !errors.Is(err, execctx.ErrPromptCancelled) {
		t.Errorf("expected ErrPromptCancelled when inputs run out, got %v", err)
	}
}

func TestStaticPromptContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := execctx.NewStaticPrompt("a")
	if _, err := p.Request(ctx, execctx.PromptRequest{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if p.Remaining() != 1 {
		t.Errorf("expected input to remain unread, got %d", p.Remaining())
	}
}
