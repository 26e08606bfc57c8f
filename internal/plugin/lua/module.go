package lua

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/selex/internal/dispatcher/handler"
	"github.com/dshills/selex/internal/engine/selection"
	"github.com/dshills/selex/internal/engine/text"
	"github.com/dshills/selex/internal/transform"
)

// ModuleName is the global the module is installed as.
const ModuleName = "selex"

// Host is the session a script operates on.
type Host interface {
	Document() *text.Document
	Regions() []selection.Region
	SetRegions(regions []selection.Region) error
	PrimaryIndex() int

	// Execute runs one transformation. Without a pattern, pattern modes
	// prompt the user.
	Execute(ctx context.Context, m transform.Mode, pattern string, hasPattern bool) handler.Result
}

// Module implements the selex Lua API.
type Module struct {
	host Host
}

// NewModule creates the module for host.
func NewModule(host Host) *Module {
	return &Module{host: host}
}

// Register installs the module into the state.
func (m *Module) Register(s *State) error {
	if m.host == nil {
		return ErrNoHost
	}
	return s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"document":    m.document,
		"count":       m.count,
		"regions":     m.regions,
		"set_regions": m.setRegions,
		"primary":     m.primary,
		"text":        m.text,
		"run":         m.run,
		"select":      m.patternMode(transform.ModeSelect),
		"split":       m.patternMode(transform.ModeSplit),
		"keep":        m.patternMode(transform.ModeKeepMatching),
		"drop":        m.patternMode(transform.ModeClearMatching),
		"split_lines": m.plainMode(transform.ModeSplitLines),
		"first_last":  m.plainMode(transform.ModeSelectFirstLast),
		"clear":       m.plainMode(transform.ModeClear),
		"clear_main":  m.plainMode(transform.ModeClearMain),
	})
}

// document() -> string
func (m *Module) document(L *lua.LState) int {
	L.Push(lua.LString(m.host.Document().Text()))
	return 1
}

// count() -> number
func (m *Module) count(L *lua.LState) int {
	L.Push(lua.LNumber(len(m.host.Regions())))
	return 1
}

// regions() -> {{anchor=, active=, text=}, ...}
func (m *Module) regions(L *lua.LState) int {
	doc := m.host.Document()
	tbl := L.NewTable()
	for i, r := range m.host.Regions() {
		anchor, active := selection.Offsets(doc, r)
		entry := L.NewTable()
		entry.RawSetString("anchor", lua.LNumber(anchor))
		entry.RawSetString("active", lua.LNumber(active))
		entry.RawSetString("text", lua.LString(selection.Text(doc, r)))
		tbl.RawSetInt(i+1, entry)
	}
	L.Push(tbl)
	return 1
}

// set_regions({{anchor, active} | {anchor=, active=}, ...}) -> number
func (m *Module) setRegions(L *lua.LState) int {
	tbl := L.CheckTable(1)
	doc := m.host.Document()

	n := tbl.Len()
	if n == 0 {
		L.ArgError(1, "at least one region is required")
		return 0
	}

	regions := make([]selection.Region, 0, n)
	for i := 1; i <= n; i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.ArgError(1, "regions must be tables")
			return 0
		}
		anchor, okA := offsetField(entry, "anchor", 1)
		active, okB := offsetField(entry, "active", 2)
		if !okA || !okB {
			L.ArgError(1, "region needs anchor and active offsets")
			return 0
		}
		if anchor < 0 || anchor > doc.Len() || active < 0 || active > doc.Len() {
			L.ArgError(1, "offset out of range")
			return 0
		}
		regions = append(regions, selection.FromOffsets(doc, anchor, active))
	}

	if err := m.host.SetRegions(regions); err != nil {
		L.RaiseError("set_regions: %v", err)
		return 0
	}
	L.Push(lua.LNumber(len(regions)))
	return 1
}

// primary() -> index
func (m *Module) primary(L *lua.LState) int {
	L.Push(lua.LNumber(m.host.PrimaryIndex() + 1))
	return 1
}

// text(index) -> string
func (m *Module) text(L *lua.LState) int {
	i := L.CheckInt(1)
	regions := m.host.Regions()
	if i < 1 || i > len(regions) {
		L.ArgError(1, "region index out of range")
		return 0
	}
	L.Push(lua.LString(selection.Text(m.host.Document(), regions[i-1])))
	return 1
}

// run(mode [, pattern]) -> count, status
func (m *Module) run(L *lua.LState) int {
	mode, err := transform.ParseMode(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	return m.execute(L, mode, 2)
}

func (m *Module) patternMode(mode transform.Mode) lua.LGFunction {
	return func(L *lua.LState) int {
		return m.execute(L, mode, 1)
	}
}

func (m *Module) plainMode(mode transform.Mode) lua.LGFunction {
	return func(L *lua.LState) int {
		return m.execute(L, mode, 0)
	}
}

// execute runs mode, reading an optional pattern at argument patternArg.
// Without a pattern the host prompts under the script context, so the
// execution timeout bounds the wait for an answer.
// Errors are raised; cancelled and no-op results return the unchanged count
// with their status.
func (m *Module) execute(L *lua.LState, mode transform.Mode, patternArg int) int {
	var pattern string
	hasPattern := false
	if patternArg > 0 && mode.NeedsPattern() && L.GetTop() >= patternArg && L.Get(patternArg) != lua.LNil {
		pattern = L.CheckString(patternArg)
		hasPattern = true
	}

	ctx := L.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res := m.host.Execute(ctx, mode, pattern, hasPattern)
	if res.IsError() {
		L.RaiseError("%v", res.Error)
		return 0
	}

	L.Push(lua.LNumber(len(m.host.Regions())))
	L.Push(lua.LString(res.Status.String()))
	return 2
}

// offsetField reads an offset by name or, failing that, by position.
func offsetField(tbl *lua.LTable, name string, index int) (int, bool) {
	v := tbl.RawGetString(name)
	if v == lua.LNil {
		v = tbl.RawGetInt(index)
	}
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0, false
	}
	return int(n), true
}
