package dispatcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/selex/internal/dispatcher/handler"
)

// Router routes actions to handlers by exact name or namespace prefix.
type Router struct {
	mu sync.RWMutex

	// Exact action handlers, checked before namespaces.
	exact map[string]handler.Handler

	// Namespace handlers (e.g., "selections" handles "selections.*")
	namespaces map[string]handler.NamespaceHandler

	// Fallback handler for unmatched actions
	fallback handler.Handler
}

// NewRouter creates a new action router.
func NewRouter() *Router {
	return &Router{
		exact:      make(map[string]handler.Handler),
		namespaces: make(map[string]handler.NamespaceHandler),
	}
}

// Register registers a handler for a single action name.
func (r *Router) Register(actionName string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exact[actionName] = h
}

// Unregister removes the handler for a single action name.
func (r *Router) Unregister(actionName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.exact, actionName)
}

// RegisterNamespace registers a handler for all actions in its namespace.
func (r *Router) RegisterNamespace(h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[h.Namespace()] = h
}

// UnregisterNamespace removes a namespace handler.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// SetFallback sets the fallback handler for unmatched actions.
func (r *Router) SetFallback(h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

// Route finds the appropriate handler for an action.
// Returns nil if no handler is found.
func (r *Router) Route(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h, ok := r.exact[actionName]; ok {
		return h
	}

	namespace := extractNamespace(actionName)
	if namespace != "" {
		if h, ok := r.namespaces[namespace]; ok && h.CanHandle(actionName) {
			return h
		}
	}

	return r.fallback
}

// HasNamespace returns true if a handler is registered for the namespace.
func (r *Router) HasNamespace(namespace string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.namespaces[namespace]
	return ok
}

// Actions returns every routable action name, sorted.
func (r *Router) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for name := range r.exact {
		seen[name] = struct{}{}
	}
	for _, h := range r.namespaces {
		for _, name := range h.Actions() {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanRoute returns true if the router can handle the action.
func (r *Router) CanRoute(actionName string) bool {
	return r.Route(actionName) != nil
}

// extractNamespace extracts the namespace from "namespace.action" format.
// Returns empty string if no namespace separator is found.
func extractNamespace(actionName string) string {
	idx := strings.Index(actionName, ".")
	if idx < 0 {
		return ""
	}
	return actionName[:idx]
}

// ExtractActionName extracts the action name without namespace.
// For "selections.split", returns "split".
func ExtractActionName(fullName string) string {
	idx := strings.Index(fullName, ".")
	if idx < 0 {
		return fullName
	}
	return fullName[idx+1:]
}

// BuildActionName builds a full action name from namespace and action.
func BuildActionName(namespace, action string) string {
	if namespace == "" {
		return action
	}
	return namespace + "." + action
}
