package transform

import (
	"fmt"
	"strings"

	"github.com/dshills/selex/internal/engine/match"
	"github.com/dshills/selex/internal/engine/selection"
	"github.com/dshills/selex/internal/engine/text"
)

// Mode identifies a transformation rule.
type Mode uint8

const (
	// ModeSelect selects every match inside every region.
	ModeSelect Mode = iota
	// ModeSplit splits every region on matches.
	ModeSplit
	// ModeSplitLines splits multi-line regions into one region per line.
	ModeSplitLines
	// ModeSelectFirstLast reduces regions to their edge characters.
	ModeSelectFirstLast
	// ModeClear keeps only the primary region.
	ModeClear
	// ModeClearMain removes the primary region.
	ModeClearMain
	// ModeKeepMatching keeps regions whose text matches.
	ModeKeepMatching
	// ModeClearMatching drops regions whose text matches.
	ModeClearMatching
)

var modeNames = map[Mode]string{
	ModeSelect:          "select",
	ModeSplit:           "split",
	ModeSplitLines:      "splitLines",
	ModeSelectFirstLast: "selectFirstLast",
	ModeClear:           "selectionsClear",
	ModeClearMain:       "selectionsClearMain",
	ModeKeepMatching:    "keepMatching",
	ModeClearMatching:   "clearMatching",
}

var modeAliases = map[string]Mode{
	"select":              ModeSelect,
	"split":               ModeSplit,
	"splitlines":          ModeSplitLines,
	"lines":               ModeSplitLines,
	"selectfirstlast":     ModeSelectFirstLast,
	"firstlast":           ModeSelectFirstLast,
	"edges":               ModeSelectFirstLast,
	"selectionsclear":     ModeClear,
	"clear":               ModeClear,
	"selectionsclearmain": ModeClearMain,
	"clearmain":           ModeClearMain,
	"keepmatching":        ModeKeepMatching,
	"keep":                ModeKeepMatching,
	"clearmatching":       ModeClearMatching,
	"drop":                ModeClearMatching,
}

// String returns the canonical mode name.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// NeedsPattern reports whether the mode requires a compiled pattern.
func (m Mode) NeedsPattern() bool {
	switch m {
	case ModeSelect, ModeSplit, ModeKeepMatching, ModeClearMatching:
		return true
	}
	return false
}

// NeedsPrimary reports whether the mode may consult the primary region.
func (m Mode) NeedsPrimary() bool {
	switch m {
	case ModeClear, ModeClearMain, ModeKeepMatching, ModeClearMatching:
		return true
	}
	return false
}

// ParseMode parses a mode name. Canonical names and short aliases such as
// "lines", "edges", "keep" and "drop" are accepted; case, '-' and '_' are
// ignored.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(s)))
	if m, ok := modeAliases[key]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Modes returns all modes in declaration order.
func Modes() []Mode {
	return []Mode{
		ModeSelect, ModeSplit, ModeSplitLines, ModeSelectFirstLast,
		ModeClear, ModeClearMain, ModeKeepMatching, ModeClearMatching,
	}
}

// PrimaryProvider reports which region the host considers primary.
type PrimaryProvider interface {
	Primary() selection.Region
}

// PrimaryFunc adapts a function to PrimaryProvider.
type PrimaryFunc func() selection.Region

// Primary calls f.
func (f PrimaryFunc) Primary() selection.Region {
	return f()
}

// FixedPrimary returns a provider that always reports r.
func FixedPrimary(r selection.Region) PrimaryProvider {
	return PrimaryFunc(func() selection.Region { return r })
}

// Options configures a Transformer.
type Options struct {
	// EdgePolicy controls how selectFirstLast steps one character.
	EdgePolicy EdgePolicy
}

// Request describes one transformation.
type Request struct {
	Mode     Mode
	Snapshot text.Snapshot
	Regions  []selection.Region
	Pattern  *match.Pattern
	Primary  PrimaryProvider
}

// Transformer dispatches requests to the per-mode algorithms.
type Transformer struct {
	options Options
}

// New creates a transformer with the given options.
func New(opts Options) *Transformer {
	return &Transformer{options: opts}
}

// Options returns the transformer's options.
func (t *Transformer) Options() Options {
	return t.options
}

// Apply runs the requested transformation and returns the new region set.
func (t *Transformer) Apply(req Request) ([]selection.Region, error) {
	if req.Snapshot == nil && req.Mode != ModeClear && req.Mode != ModeClearMain {
		return nil, ErrMissingSnapshot
	}
	if req.Mode.NeedsPattern() && req.Pattern == nil {
		return nil, ErrMissingPattern
	}
	if req.Mode.NeedsPrimary() && req.Primary == nil {
		return nil, ErrMissingPrimary
	}

	switch req.Mode {
	case ModeSelect:
		return Select(req.Snapshot, req.Regions, req.Pattern)
	case ModeSplit:
		return Split(req.Snapshot, req.Regions, req.Pattern)
	case ModeSplitLines:
		return SplitLines(req.Snapshot, req.Regions), nil
	case ModeSelectFirstLast:
		return SelectFirstLast(req.Snapshot, req.Regions, t.options.EdgePolicy), nil
	case ModeClear:
		return Clear(req.Primary), nil
	case ModeClearMain:
		return ClearMain(req.Regions, req.Primary), nil
	case ModeKeepMatching:
		return KeepMatching(req.Snapshot, req.Regions, req.Pattern, req.Primary)
	case ModeClearMatching:
		return ClearMatching(req.Snapshot, req.Regions, req.Pattern, req.Primary)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, req.Mode)
	}
}
