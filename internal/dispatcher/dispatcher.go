package dispatcher

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/selex/internal/dispatcher/execctx"
	"github.com/dshills/selex/internal/dispatcher/handler"
	"github.com/dshills/selex/internal/input"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	router  *Router
	config  Config
	metrics *Metrics
	logger  execctx.Logger
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		router: NewRouter(),
		config: config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetLogger sets the logger used for contexts that carry none.
func (d *Dispatcher) SetLogger(l execctx.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = l
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.router.RegisterNamespace(h)
}

// RegisterHandler registers a handler for a single action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.router.Register(actionName, h)
}

// RegisterHandlerFunc registers a function for a single action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn handler.ActionFunc) {
	d.router.Register(actionName, handler.NewHandlerFunc(actionName, fn))
}

// Dispatch runs action against ectx and returns the handler's result.
// ectx.ID is set to a fresh command id.
func (d *Dispatcher) Dispatch(ctx context.Context, action input.Action, ectx *execctx.ExecutionContext) handler.Result {
	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}
	if ectx == nil {
		return handler.Error(ErrMissingContext)
	}

	start := time.Now()

	ectx.ID = uuid.NewString()
	ectx.Logger = &commandLogger{
		base:   d.baseLogger(ectx),
		prefix: fmt.Sprintf("[%s %s] ", shortID(ectx.ID), action.Name),
	}

	h := d.router.Route(action.Name)
	if h == nil {
		ectx.Logger.Warn("no handler (source %s)", action.Source)
		return handler.Errorf("%w: %s", ErrNoHandler, action.Name)
	}

	ectx.Logger.Debug("dispatch (source %s, %d regions)", action.Source, len(ectx.Regions))

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(ctx, h, action, ectx)
	} else {
		result = h.Handle(ctx, action, ectx)
	}

	switch result.Status {
	case handler.StatusError:
		ectx.Logger.Error("%v", result.Error)
	default:
		ectx.Logger.Debug("%s in %s", result.Status, time.Since(start))
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(start), result.Status)
	}

	return result
}

func (d *Dispatcher) executeWithRecovery(ctx context.Context, h handler.Handler, action input.Action, ectx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Errorf("%w in %s: %v\n%s", ErrPanic, action.Name, r, string(stack[:n]))

			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(ctx, action, ectx)
}

func (d *Dispatcher) baseLogger(ectx *execctx.ExecutionContext) execctx.Logger {
	if cl, ok := ectx.Logger.(*commandLogger); ok {
		return cl.base
	}
	if ectx.Logger != nil {
		return ectx.Logger
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.logger
}

// Actions returns every routable action name, sorted.
func (d *Dispatcher) Actions() []string {
	return d.router.Actions()
}

// Router returns the action router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Metrics returns the metrics collector, or nil if disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// commandLogger prefixes every line with the command id and action name.
type commandLogger struct {
	base   execctx.Logger
	prefix string
}

func (l *commandLogger) Debug(format string, args ...interface{}) {
	if l.base != nil {
		l.base.Debug(l.prefix+format, args...)
	}
}

func (l *commandLogger) Info(format string, args ...interface{}) {
	if l.base != nil {
		l.base.Info(l.prefix+format, args...)
	}
}

func (l *commandLogger) Warn(format string, args ...interface{}) {
	if l.base != nil {
		l.base.Warn(l.prefix+format, args...)
	}
}

func (l *commandLogger) Error(format string, args ...interface{}) {
	if l.base != nil {
		l.base.Error(l.prefix+format, args...)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
