package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single DoString or DoFile call.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps a gopher-lua state with sandboxing and execution deadlines.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes calls made
// through State.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	output           io.Writer

	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the deadline for each execution. Zero disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// WithOutput redirects print to w.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		s.output = w
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) (*State, error) {
	state := &State{
		executionTimeout: DefaultExecutionTimeout,
		output:           io.Discard,
	}
	for _, opt := range opts {
		opt(state)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	state.L = L

	openSafeLibraries(L)
	installSandbox(L, state.output)

	return state, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
// io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installSandbox removes the loaders and routes print to out.
func installSandbox(L *lua.LState, out io.Writer) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(out, strings.Join(parts, "\t"))
		return 0
	}))
}

// DoString executes a chunk of Lua code.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.run(ctx, func() error {
		return s.L.DoString(code)
	})
}

// DoFile executes a Lua file.
func (s *State) DoFile(ctx context.Context, path string) error {
	return s.run(ctx, func() error {
		return s.L.DoFile(path)
	})
}

// run executes fn under the state lock with the execution deadline attached
// to the Lua state, recovering panics raised by Go callbacks.
func (s *State) run(ctx context.Context, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}

	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	err = fn()
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	}
	return err
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// RegisterModule installs a global table holding the given functions.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	mod := s.L.SetFuncs(s.L.NewTable(), funcs)
	s.L.SetGlobal(name, mod)
	return nil
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
