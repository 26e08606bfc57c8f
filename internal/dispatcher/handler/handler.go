// Package handler provides the handler interface and types for action dispatch.
package handler

import (
	"context"

	"github.com/dshills/selex/internal/dispatcher/execctx"
	"github.com/dshills/selex/internal/input"
)

// ActionFunc is the signature of a single action implementation.
type ActionFunc func(ctx context.Context, action input.Action, ectx *execctx.ExecutionContext) Result

// Handler processes a specific action or set of actions.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(ctx context.Context, action input.Action, ectx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool
}

// HandlerFunc adapts a function to Handler for a single action name.
type HandlerFunc struct {
	name string
	fn   ActionFunc
}

// NewHandlerFunc creates a handler that runs fn for actionName.
func NewHandlerFunc(actionName string, fn ActionFunc) *HandlerFunc {
	return &HandlerFunc{name: actionName, fn: fn}
}

// Handle implements Handler.Handle.
func (f *HandlerFunc) Handle(ctx context.Context, action input.Action, ectx *execctx.ExecutionContext) Result {
	if f.fn == nil {
		return Errorf("handler function is nil")
	}
	return f.fn(ctx, action, ectx)
}

// CanHandle implements Handler.CanHandle.
func (f *HandlerFunc) CanHandle(actionName string) bool {
	return actionName == f.name
}

// NamespaceHandler handles all actions within a namespace.
// A namespace is the prefix before the first dot (e.g., "selections" in "selections.split").
type NamespaceHandler interface {
	Handler

	// Namespace returns the namespace prefix.
	Namespace() string

	// Actions returns the action names the handler serves.
	Actions() []string
}

// BaseNamespaceHandler provides a base implementation for namespace handlers.
type BaseNamespaceHandler struct {
	namespace string
	names     []string
	actions   map[string]ActionFunc
}

// NewBaseNamespaceHandler creates a new BaseNamespaceHandler.
func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{
		namespace: namespace,
		actions:   make(map[string]ActionFunc),
	}
}

// Register registers a handler function for an action name.
func (h *BaseNamespaceHandler) Register(actionName string, fn ActionFunc) {
	if _, ok := h.actions[actionName]; !ok {
		h.names = append(h.names, actionName)
	}
	h.actions[actionName] = fn
}

// Namespace implements NamespaceHandler.Namespace.
func (h *BaseNamespaceHandler) Namespace() string {
	return h.namespace
}

// Actions implements NamespaceHandler.Actions, in registration order.
func (h *BaseNamespaceHandler) Actions() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// CanHandle implements Handler.CanHandle.
func (h *BaseNamespaceHandler) CanHandle(actionName string) bool {
	_, ok := h.actions[actionName]
	return ok
}

// Handle implements Handler.Handle.
func (h *BaseNamespaceHandler) Handle(ctx context.Context, action input.Action, ectx *execctx.ExecutionContext) Result {
	fn, ok := h.actions[action.Name]
	if !ok {
		return Errorf("unknown action in namespace %s: %s", h.namespace, action.Name)
	}
	return fn(ctx, action, ectx)
}
