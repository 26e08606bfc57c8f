package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dshills/selex/internal/config"
	"github.com/dshills/selex/internal/config/loader"
	"github.com/dshills/selex/internal/config/watcher"
	"github.com/dshills/selex/internal/dispatcher"
	"github.com/dshills/selex/internal/dispatcher/execctx"
	"github.com/dshills/selex/internal/dispatcher/handler"
	"github.com/dshills/selex/internal/dispatcher/handlers/selections"
	"github.com/dshills/selex/internal/engine/selection"
	"github.com/dshills/selex/internal/engine/text"
	"github.com/dshills/selex/internal/event"
	"github.com/dshills/selex/internal/input"
	"github.com/dshills/selex/internal/input/mode"
	"github.com/dshills/selex/internal/plugin/lua"
	"github.com/dshills/selex/internal/transform"
)

// Options configures an Application.
type Options struct {
	// ConfigPath is the TOML or YAML config file. Empty uses defaults and
	// the environment only.
	ConfigPath string

	// FS reads the config file. Defaults to the OS file system.
	FS loader.FileSystem

	// Env overrides the process environment for config loading.
	Env []string

	// Text is the document content.
	Text string

	// Regions is the initial region spec, e.g. "0:5,8:8". Empty places a
	// cursor at the start of the document.
	Regions string

	// LogLevel and Format override the configuration when set.
	LogLevel string
	Format   string

	// Input feeds the prompt and the REPL. Defaults to os.Stdin.
	Input io.Reader

	// Output receives reports and prompts. Defaults to os.Stdout.
	Output io.Writer

	// ErrOutput receives log lines. Defaults to os.Stderr.
	ErrOutput io.Writer
}

// Application wires the session host to the command pipeline.
type Application struct {
	mu sync.RWMutex

	opts   Options
	config *config.Config

	logger     *Logger
	modes      *mode.Manager
	dispatcher *dispatcher.Dispatcher
	session    *Session
	events     *event.Bus

	in     *bufio.Reader
	out    io.Writer
	prompt execctx.Prompt

	lua     *lua.State
	watcher *watcher.Watcher
	closed  bool
}

// New creates an application from opts.
func New(opts Options) (*Application, error) {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, NewOperationError("load config", opts.ConfigPath, err)
	}

	logger := NewLogger(LoggerConfig{
		Level:  ParseLogLevel(cfg.Logging.Level),
		Output: opts.ErrOutput,
		Prefix: "selex",
	})

	doc := text.NewDocument(opts.Text)
	regions, err := selection.ParseRegions(doc, opts.Regions)
	if err != nil {
		return nil, NewOperationError("parse regions", opts.Regions, err)
	}

	app := &Application{
		opts:    opts,
		config:  cfg,
		logger:  logger,
		modes:   mode.NewDefaultManager(),
		session: NewSession(doc, regions),
		in:      bufio.NewReader(opts.Input),
		out:     opts.Output,
	}
	app.prompt = NewLinePrompt(app.in, app.out)

	app.dispatcher = dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	app.dispatcher.SetLogger(logger.WithComponent("dispatcher"))
	app.dispatcher.RegisterNamespace(selections.NewHandler())

	eventLog := logger.WithComponent("events")
	app.events = event.NewBus(event.WithPanicHandler(func(ev event.Event, r any) {
		eventLog.Error("%s handler panic: %v", ev.Type, r)
	}))
	_, _ = app.events.Subscribe("**", func(_ context.Context, ev event.Event) error {
		eventLog.Debug("%s %+v", ev.Type, ev.Payload)
		return nil
	})

	app.modes.OnChange(func(from, to mode.Mode) {
		app.publish(context.Background(), event.NewEvent(event.TopicModeChanged,
			event.ModeChanged{From: modeName(from), To: modeName(to)}, "mode"))
	})

	logger.WithField("session", app.session.ID()).
		Debug("session started: %d characters, %d regions", doc.Len(), app.session.Len())
	return app, nil
}

// loadConfig loads the config file and environment, then applies the
// command-line overrides.
func loadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		Path: opts.ConfigPath,
		FS:   opts.FS,
		Env:  opts.Env,
	})
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		if err := cfg.Set("logging.level", opts.LogLevel); err != nil {
			return nil, err
		}
	}
	if opts.Format != "" {
		if err := cfg.Set("output.format", opts.Format); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func modeName(m mode.Mode) string {
	if m == nil {
		return "none"
	}
	return m.Name()
}

// Config returns a copy of the current configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config.Clone()
}

// SetConfig changes one setting from its string form.
func (app *Application) SetConfig(path, value string) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if err := app.config.Set(path, value); err != nil {
		return err
	}
	app.logger.SetLevel(ParseLogLevel(app.config.Logging.Level))
	return nil
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Session returns the session host.
func (app *Application) Session() *Session {
	return app.session
}

// Modes returns the mode manager.
func (app *Application) Modes() *mode.Manager {
	return app.modes
}

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Events returns the application event bus.
func (app *Application) Events() *event.Bus {
	return app.events
}

// publish delivers ev, logging handler failures.
func (app *Application) publish(ctx context.Context, ev event.Event) {
	if err := app.events.Publish(ctx, ev); err != nil {
		app.logger.WithComponent("events").Warn("%v", err)
	}
}

// Output returns the writer reports go to.
func (app *Application) Output() io.Writer {
	return app.out
}

// Document returns the session document.
func (app *Application) Document() *text.Document {
	return app.session.Document()
}

// Regions returns the session regions.
func (app *Application) Regions() []selection.Region {
	return app.session.Regions()
}

// SetRegions replaces the session regions.
func (app *Application) SetRegions(regions []selection.Region) error {
	return app.session.SetRegions(regions)
}

// PrimaryIndex returns the index of the primary region.
func (app *Application) PrimaryIndex() int {
	return app.session.PrimaryIndex()
}

// Execute runs one transformation on the session. Without a pattern,
// pattern modes prompt on the application input.
func (app *Application) Execute(ctx context.Context, m transform.Mode, pattern string, hasPattern bool) handler.Result {
	name, ok := selections.ActionFor(m)
	if !ok {
		return handler.Errorf("%w: %s", transform.ErrUnknownMode, m)
	}
	action := input.NewAction(name, input.SourceAPI)
	if hasPattern {
		action = action.WithPattern(pattern)
	}
	return app.Dispatch(ctx, action)
}

// Dispatch runs an action against the session and applies a successful
// result. Other results leave the regions untouched.
func (app *Application) Dispatch(ctx context.Context, action input.Action) handler.Result {
	ectx, err := app.executionContext()
	if err != nil {
		return handler.Error(err)
	}

	start := time.Now()
	before := app.session.Len()
	res := app.dispatcher.Dispatch(ctx, action, ectx)

	if app.session.Apply(res) {
		app.publish(ctx, event.NewEvent(event.TopicSelectionsChanged, event.SelectionsChanged{
			Action: action.Name,
			Before: before,
			After:  app.session.Len(),
		}, "session").WithCorrelation(ectx.ID))
	}
	if res.IsError() {
		app.logger.Warn("%s: %v", action.Name, res.Error)
	}

	completed := event.CommandCompleted{
		Action:   action.Name,
		Status:   res.Status.String(),
		Pattern:  res.Pattern,
		Message:  res.Message,
		Duration: time.Since(start),
	}
	if res.Error != nil {
		completed.Message = res.Error.Error()
	}
	app.publish(ctx, event.NewEvent(event.TopicCommandCompleted, completed, "dispatcher").WithCorrelation(ectx.ID))
	return res
}

// executionContext snapshots the session and configuration for one command.
func (app *Application) executionContext() (*execctx.ExecutionContext, error) {
	app.mu.RLock()
	cfg := app.config.Clone()
	app.mu.RUnlock()

	matchOpts, err := cfg.MatchOptions()
	if err != nil {
		return nil, err
	}
	transformOpts, err := cfg.TransformOptions()
	if err != nil {
		return nil, err
	}

	ectx := execctx.New().
		WithSnapshot(app.session.Document(), app.session.Regions()).
		WithPrimary(app.session).
		WithPrompt(app.prompt, app.modes).
		WithMatchOptions(matchOpts).
		WithTransformer(transform.New(transformOpts))
	ectx.PromptText = cfg.Prompt.Text
	ectx.SetData("session", app.session.ID())
	return ectx, nil
}

// Report writes the session regions, annotated with res when non-nil, in
// the configured output format.
func (app *Application) Report(w io.Writer, res *handler.Result) error {
	rep := NewReport(app.session)
	if res != nil {
		rep = rep.WithResult(*res)
	}
	return WriteReport(w, app.Config().Output.Format, rep)
}

// RunScript executes a Lua file against the session.
func (app *Application) RunScript(ctx context.Context, path string) error {
	state, err := app.luaState()
	if err != nil {
		return err
	}
	if err := state.DoFile(ctx, path); err != nil {
		return NewOperationError("script", path, err)
	}
	return nil
}

// RunLua executes a chunk of Lua code against the session. Globals persist
// between calls.
func (app *Application) RunLua(ctx context.Context, code string) error {
	state, err := app.luaState()
	if err != nil {
		return err
	}
	return state.DoString(ctx, code)
}

// luaState returns the shared Lua state, creating it on first use.
func (app *Application) luaState() (*lua.State, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return nil, ErrClosed
	}
	if app.lua != nil {
		return app.lua, nil
	}

	state, err := lua.NewState(lua.WithOutput(app.out))
	if err != nil {
		return nil, err
	}
	if err := lua.NewModule(app).Register(state); err != nil {
		_ = state.Close()
		return nil, err
	}
	app.lua = state
	return state, nil
}

// ReloadConfig reloads the config file and environment, keeping the
// command-line overrides. On failure the current configuration stays.
func (app *Application) ReloadConfig() error {
	cfg, err := loadConfig(app.opts)
	if err != nil {
		return NewOperationError("reload config", app.opts.ConfigPath, err)
	}

	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	app.logger.WithComponent("config").Info("configuration reloaded")
	app.publish(context.Background(), event.NewEvent(event.TopicConfigReloaded,
		event.ConfigReloaded{Path: app.opts.ConfigPath}, "config"))
	return nil
}

// WatchConfig reloads the configuration whenever the config file changes.
// It does nothing without a config file.
func (app *Application) WatchConfig() error {
	if app.opts.ConfigPath == "" {
		return nil
	}

	log := app.logger.WithComponent("watcher")
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		log.Warn("watch error: %v", err)
	}))
	if err != nil {
		return err
	}
	if err := w.Watch(app.opts.ConfigPath); err != nil {
		_ = w.Stop()
		return fmt.Errorf("watch %s: %w", app.opts.ConfigPath, err)
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			log.Warn("config file %s: %s", ev.Op, ev.Path)
			return
		}
		if err := app.ReloadConfig(); err != nil {
			log.Error("%v", err)
		}
	})
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return err
	}

	app.mu.Lock()
	defer app.mu.Unlock()
	if app.closed {
		_ = w.Stop()
		return ErrClosed
	}
	app.watcher = w
	return nil
}

// Close stops the config watcher and releases the Lua state.
func (app *Application) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return nil
	}
	app.closed = true

	var firstErr error
	if app.watcher != nil {
		if err := app.watcher.Stop(); err != nil {
			firstErr = err
		}
	}
	if app.lua != nil {
		if err := app.lua.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
