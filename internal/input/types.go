package input

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceCommandLine indicates the action came from a one-shot CLI invocation.
	SourceCommandLine ActionSource = iota
	// SourceREPL indicates the action came from the interactive command loop.
	SourceREPL
	// SourceScript indicates the action came from a Lua script.
	SourceScript
	// SourceAPI indicates the action came from a direct API call.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceCommandLine:
		return "cli"
	case SourceREPL:
		return "repl"
	case SourceScript:
		return "script"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// ActionArgs holds arguments for an action.
type ActionArgs struct {
	// Pattern is a regex supplied up front. When HasPattern is false the
	// handler asks the prompt for one.
	Pattern string

	// HasPattern reports whether Pattern was supplied. An empty pattern is
	// a valid regex, so presence is tracked separately.
	HasPattern bool

	// Extra holds additional key-value pairs for extensibility.
	Extra map[string]interface{}
}

// Get retrieves a value from Extra.
func (a ActionArgs) Get(key string) (interface{}, bool) {
	if a.Extra == nil {
		return nil, false
	}
	v, ok := a.Extra[key]
	return v, ok
}

// GetString retrieves a string value from Extra.
func (a ActionArgs) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Action represents a command to be executed by the dispatcher.
type Action struct {
	// Name is the command identifier (e.g., "selections.split").
	Name string

	// Args contains command-specific arguments.
	Args ActionArgs

	// Source indicates where this action originated.
	Source ActionSource
}

// NewAction creates an action with no arguments.
func NewAction(name string, source ActionSource) Action {
	return Action{Name: name, Source: source}
}

// WithPattern returns a copy of the action carrying pattern, which skips
// the prompt.
func (a Action) WithPattern(pattern string) Action {
	a.Args.Pattern = pattern
	a.Args.HasPattern = true
	return a
}
