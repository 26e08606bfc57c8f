// Package lua runs selection scripts on a sandboxed gopher-lua state.
//
// A State opens only the base, table, string and math libraries and removes
// every way of loading code from disk. Scripts reach the session through the
// global selex module:
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(2 * time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := lua.NewModule(host).Register(state); err != nil {
//	    return err
//	}
//	err = state.DoString(ctx, `selex.select("foo") selex.keep("^f")`)
//
// Region indexes are 1-based on the Lua side; offsets are 0-based character
// offsets, as on the command line.
//
// Pattern functions called without a pattern (selex.select() rather than
// selex.select("foo")) prompt the user. The prompt runs under the script's
// execution timeout, DefaultExecutionTimeout unless WithExecutionTimeout says
// otherwise, so an answer that arrives after the deadline ends the script with
// ErrExecutionTimeout and leaves the regions unchanged. Scripts meant to run
// unattended should always pass a pattern.
package lua
