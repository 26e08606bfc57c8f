package selections

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/selex/internal/dispatcher/execctx"
	"github.com/dshills/selex/internal/dispatcher/handler"
	"github.com/dshills/selex/internal/engine/match"
	"github.com/dshills/selex/internal/input"
	"github.com/dshills/selex/internal/input/mode"
	"github.com/dshills/selex/internal/transform"
)

// Namespace is the action namespace served by Handler.
const Namespace = "selections"

// Action names for selection commands.
const (
	ActionSelect        = "selections.select"
	ActionSplit         = "selections.split"
	ActionSplitLines    = "selections.splitLines"
	ActionFirstLast     = "selections.firstLast"
	ActionClear         = "selections.clear"
	ActionClearMain     = "selections.clearMain"
	ActionKeepMatching  = "selections.keepMatching"
	ActionClearMatching = "selections.clearMatching"
)

var actionModes = map[string]transform.Mode{
	ActionSelect:        transform.ModeSelect,
	ActionSplit:         transform.ModeSplit,
	ActionSplitLines:    transform.ModeSplitLines,
	ActionFirstLast:     transform.ModeSelectFirstLast,
	ActionClear:         transform.ModeClear,
	ActionClearMain:     transform.ModeClearMain,
	ActionKeepMatching:  transform.ModeKeepMatching,
	ActionClearMatching: transform.ModeClearMatching,
}

// ActionFor returns the action name running mode m.
func ActionFor(m transform.Mode) (string, bool) {
	for name, am := range actionModes {
		if am == m {
			return name, true
		}
	}
	return "", false
}

// ModeFor returns the transform mode run by an action.
func ModeFor(actionName string) (transform.Mode, bool) {
	m, ok := actionModes[actionName]
	return m, ok
}

// Handler implements namespace-based selection handling.
type Handler struct{}

// NewHandler creates a new selections handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the selections namespace.
func (h *Handler) Namespace() string {
	return Namespace
}

// Actions returns the served action names in mode order.
func (h *Handler) Actions() []string {
	names := make([]string, 0, len(actionModes))
	for _, m := range transform.Modes() {
		if name, ok := ActionFor(m); ok {
			names = append(names, name)
		}
	}
	return names
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	_, ok := actionModes[actionName]
	return ok
}

// Handle runs a selection command.
func (h *Handler) Handle(ctx context.Context, action input.Action, ectx *execctx.ExecutionContext) handler.Result {
	m, ok := actionModes[action.Name]
	if !ok {
		return handler.Errorf("unknown selections action: %s", action.Name)
	}

	if m.NeedsPrimary() {
		if err := ectx.ValidateForPrimary(); err != nil {
			return handler.Error(err)
		}
	}
	if m != transform.ModeClear && m != transform.ModeClearMain {
		if err := ectx.Validate(); err != nil {
			return handler.Error(err)
		}
	}

	req := transform.Request{
		Mode:     m,
		Snapshot: ectx.Snapshot,
		Regions:  ectx.Regions,
		Primary:  ectx.Primary,
	}

	if m.NeedsPattern() {
		pat, err := acquirePattern(ctx, action, ectx)
		if err != nil {
			if isCancellation(err) {
				ectx.Log().Debug("%s: prompt cancelled", action.Name)
				return handler.CancelledWithMessage(fmt.Sprintf("%s: cancelled", m))
			}
			return handler.Errorf("%s: %w", m, err)
		}
		req.Pattern = pat
	}

	transformer := ectx.Transformer
	if transformer == nil {
		transformer = transform.New(transform.Options{})
	}

	regions, err := transformer.Apply(req)
	if err != nil {
		return handler.Errorf("%s: %w", m, err)
	}

	if len(regions) == 0 {
		// An editor cannot hold zero selections; the host keeps its regions.
		ectx.Log().Debug("%s: no regions produced", action.Name)
		return withPattern(handler.NoOpWithMessage(fmt.Sprintf("%s: no matches", m)), req.Pattern)
	}

	ectx.Log().Debug("%s: %d regions -> %d regions", action.Name, len(ectx.Regions), len(regions))
	return withPattern(handler.Success(regions), req.Pattern).
		WithData("mode", m.String())
}

// acquirePattern returns the compiled pattern for a pattern command. A
// pattern carried by the action is used directly; otherwise the prompt is
// shown while the host is in Awaiting mode. Normal mode is restored on every
// return path, including panics in the prompt.
func acquirePattern(ctx context.Context, action input.Action, ectx *execctx.ExecutionContext) (pat *match.Pattern, err error) {
	opts := ectx.MatchOptions

	if action.Args.HasPattern {
		return match.Compile(action.Args.Pattern, opts)
	}

	if err := ectx.ValidateForPrompt(); err != nil {
		return nil, err
	}

	if err := ectx.Modes.SetMode(mode.ModeAwaiting); err != nil {
		return nil, fmt.Errorf("enter %s mode: %w", mode.ModeAwaiting, err)
	}
	defer func() {
		merr := ectx.Modes.SetMode(mode.ModeNormal)
		if merr == nil {
			return
		}
		if err != nil {
			ectx.Log().Error("restore %s mode after %v: %v", mode.ModeNormal, err, merr)
			return
		}
		pat = nil
		err = fmt.Errorf("restore %s mode: %w", mode.ModeNormal, merr)
	}()

	answer, err := ectx.Prompt.Request(ctx, execctx.PromptRequest{
		Text: ectx.GetPromptText(),
		Validate: func(in string) error {
			return match.Validate(in, opts)
		},
	})
	if err != nil {
		return nil, err
	}

	return match.Compile(answer, opts)
}

func isCancellation(err error) bool {
	return errors.Is(err, execctx.ErrPromptCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func withPattern(r handler.Result, pat *match.Pattern) handler.Result {
	if pat == nil {
		return r
	}
	return r.WithPattern(pat.String())
}
