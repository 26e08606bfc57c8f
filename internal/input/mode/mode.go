package mode

// Mode defines the interface for host modes.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "normal", "awaiting").
	Name() string

	// DisplayName returns a human-readable name for a status line.
	DisplayName() string

	// Enter is called when entering this mode.
	Enter(ctx *Context) error

	// Exit is called when leaving this mode.
	Exit(ctx *Context) error
}

// Context provides information during mode transitions.
type Context struct {
	// PreviousMode is the mode being transitioned from (for Enter).
	PreviousMode string

	// NextMode is the mode being transitioned to (for Exit).
	NextMode string
}

// Setter is the capability commands use to reflect prompt state in the host.
type Setter interface {
	SetMode(name string) error
}

// SetterFunc adapts a function to Setter.
type SetterFunc func(name string) error

// SetMode calls f.
func (f SetterFunc) SetMode(name string) error {
	return f(name)
}

// Standard mode names.
const (
	ModeNormal   = "normal"
	ModeAwaiting = "awaiting"
)

// NormalMode is the idle state in which commands run.
type NormalMode struct{}

// NewNormalMode creates the normal mode.
func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

// Name returns "normal".
func (m *NormalMode) Name() string { return ModeNormal }

// DisplayName returns "NORMAL".
func (m *NormalMode) DisplayName() string { return "NORMAL" }

// Enter is a no-op.
func (m *NormalMode) Enter(ctx *Context) error { return nil }

// Exit is a no-op.
func (m *NormalMode) Exit(ctx *Context) error { return nil }

// AwaitingMode is active while a pattern prompt is open.
type AwaitingMode struct {
	entered int
}

// NewAwaitingMode creates the awaiting mode.
func NewAwaitingMode() *AwaitingMode {
	return &AwaitingMode{}
}

// Name returns "awaiting".
func (m *AwaitingMode) Name() string { return ModeAwaiting }

// DisplayName returns "AWAITING".
func (m *AwaitingMode) DisplayName() string { return "AWAITING" }

// Enter counts the prompt.
func (m *AwaitingMode) Enter(ctx *Context) error {
	m.entered++
	return nil
}

// Exit is a no-op.
func (m *AwaitingMode) Exit(ctx *Context) error { return nil }

// Prompts returns how many times the mode has been entered.
func (m *AwaitingMode) Prompts() int {
	return m.entered
}
