package handler_test

import (
	"context"
	"testing"

	"github.com/dshills/selex/internal/dispatcher/execctx"
	"github.com/dshills/selex/internal/dispatcher/handler"
	"github.com/dshills/selex/internal/input"
)

func TestHandlerFunc(t *testing.T) {
	called := false
	h := handler.NewHandlerFunc("test.action", func(ctx context.Context, action input.Action, ectx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.NoOp()
	})

	if !h.CanHandle("test.action") {
		t.Error("expected CanHandle for registered name")
	}
	if h.CanHandle("test.other") {
		t.Error("expected CanHandle false for other name")
	}

	h.Handle(context.Background(), input.NewAction("test.action", input.SourceAPI), execctx.New())
	if !called {
		t.Error("expected function to be called")
	}
}

func TestHandlerFuncNil(t *testing.T) {
	h := handler.NewHandlerFunc("x", nil)
	result := h.Handle(context.Background(), input.Action{Name: "x"}, execctx.New())
	if !result.IsError() {
		t.Errorf("expected error for nil function, got %v", result.Status)
	}
}

func TestBaseNamespaceHandler(t *testing.T) {
	h := handler.NewBaseNamespaceHandler("test")
	h.Register("test.b", func(context.Context, input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.NoOpWithMessage("b")
	})
	h.Register("test.a", func(context.Context, input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.NoOpWithMessage("a")
	})
	h.Register("test.b", func(context.Context, input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.NoOpWithMessage("b2")
	})

	if h.Namespace() != "test" {
		t.Errorf("expected namespace 'test', got %q", h.Namespace())
	}

	actions := h.Actions()
	if len(actions) != 2 || actions[0] != "test.b" || actions[1] != "test.a" {
		t.Errorf("expected [test.b test.a], got %v", actions)
	}

	result := h.Handle(context.Background(), input.Action{Name: "test.b"}, execctx.New())
	if result.Message != "b2" {
		t.Errorf("expected re-registered handler, got %q", result.Message)
	}

	result = h.Handle(context.Background(), input.Action{Name: "test.missing"}, execctx.New())
	if !result.IsError() {
		t.Errorf("expected error for unknown action, got %v", result.Status)
	}
}
