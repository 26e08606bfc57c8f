package mode

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownMode is returned when switching to a mode that was never
// registered.
var ErrUnknownMode = errors.New("unknown mode")

// ModeChangeCallback is called after a transition completes.
type ModeChangeCallback func(from, to Mode)

// Manager owns the registered modes and the single active one. Exit and
// Enter hooks run under the manager lock; change callbacks run after it is
// released so they may query the manager.
type Manager struct {
	mu          sync.RWMutex
	modes       map[string]Mode
	current     Mode
	previous    Mode
	transitions int

	nextID    int
	callbacks map[int]ModeChangeCallback
}

// NewManager creates a manager with no modes.
func NewManager() *Manager {
	return &Manager{
		modes:     make(map[string]Mode),
		callbacks: make(map[int]ModeChangeCallback),
	}
}

// NewDefaultManager creates a manager with the normal and awaiting modes
// registered and normal mode active.
func NewDefaultManager() *Manager {
	m := NewManager()
	m.Register(NewNormalMode())
	m.Register(NewAwaitingMode())
	_ = m.SetInitialMode(ModeNormal)
	return m
}

// Register adds mode, replacing any mode with the same name.
func (m *Manager) Register(mode Mode) {
	m.mu.Lock()
	m.modes[mode.Name()] = mode
	m.mu.Unlock()
}

// Get returns the named mode or nil.
func (m *Manager) Get(name string) Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modes[name]
}

// Modes returns the registered mode names in sorted order.
func (m *Manager) Modes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.modes))
	for name := range m.modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Current returns the active mode, or nil before SetInitialMode.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CurrentName returns the active mode name, or "".
func (m *Manager) CurrentName() string {
	if cur := m.Current(); cur != nil {
		return cur.Name()
	}
	return ""
}

// IsMode reports whether the active mode is name.
func (m *Manager) IsMode(name string) bool {
	return m.CurrentName() == name
}

// Previous returns the mode active before the last transition.
func (m *Manager) Previous() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// Transitions returns how many successful switches have happened.
func (m *Manager) Transitions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transitions
}

// SetInitialMode activates name without running Exit or callbacks.
func (m *Manager) SetInitialMode(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mode, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	m.current = mode
	return mode.Enter(&Context{})
}

// SetMode implements Setter.
func (m *Manager) SetMode(name string) error {
	return m.Switch(name)
}

// Switch leaves the active mode and enters name. Switching to the active
// mode does nothing. If Exit or Enter fails the active mode is unchanged.
func (m *Manager) Switch(name string) error {
	m.mu.Lock()
	to, ok := m.modes[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	from := m.current
	if from == to {
		m.mu.Unlock()
		return nil
	}

	if err := m.transitionLocked(from, to); err != nil {
		m.mu.Unlock()
		return err
	}
	callbacks := m.callbackListLocked()
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb(from, to)
	}
	return nil
}

func (m *Manager) transitionLocked(from, to Mode) error {
	var fromName string
	if from != nil {
		fromName = from.Name()
		if err := from.Exit(&Context{NextMode: to.Name()}); err != nil {
			return fmt.Errorf("exit %s: %w", fromName, err)
		}
	}
	if err := to.Enter(&Context{PreviousMode: fromName}); err != nil {
		return fmt.Errorf("enter %s: %w", to.Name(), err)
	}

	m.previous = from
	m.current = to
	m.transitions++
	return nil
}

func (m *Manager) callbackListLocked() []ModeChangeCallback {
	ids := make([]int, 0, len(m.callbacks))
	for id := range m.callbacks {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	list := make([]ModeChangeCallback, len(ids))
	for i, id := range ids {
		list[i] = m.callbacks[id]
	}
	return list
}

// OnChange registers callback and returns a function that removes it.
// Callbacks run in registration order.
func (m *Manager) OnChange(callback ModeChangeCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.callbacks[id] = callback

	return func() {
		m.mu.Lock()
		delete(m.callbacks, id)
		m.mu.Unlock()
	}
}
