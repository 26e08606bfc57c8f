// Package watcher provides file watching for configuration live reload.
//
// The watcher monitors configuration files through fsnotify and calls
// handlers once a burst of changes to a file has settled. Parent
// directories are watched rather than the files themselves so that
// editors that save by rename-and-replace are still seen.
package watcher

import (
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrStopped indicates the watcher was used after Stop.
var ErrStopped = errors.New("watcher: stopped")

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the last operation seen in the burst.
	Op Operation

	// Time is when the event was delivered.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// Watcher monitors files for changes.
type Watcher struct {
	mu sync.Mutex

	fsw *fsnotify.Watcher

	// Watched files, and how many files share each watched directory
	files map[string]struct{}
	dirs  map[string]int

	handlers []Handler
	onError  func(error)

	debounce time.Duration
	pending  map[string]*pendingEvent

	running bool
	stopped bool
	done    chan struct{}
	wg      sync.WaitGroup
}

type pendingEvent struct {
	op    Operation
	timer *time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long a file must stay quiet before handlers run.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets a callback for fsnotify errors.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// New creates a new file watcher.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
		debounce: 100 * time.Millisecond,
		pending:  make(map[string]*pendingEvent),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds a file to the watch list. The file need not exist yet, but
// its directory must.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return ErrStopped
	}
	if _, ok := w.files[absPath]; ok {
		return nil
	}

	dir := filepath.Dir(absPath)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[absPath] = struct{}{}
	return nil
}

// Unwatch removes a file from the watch list.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[absPath]; !ok {
		return nil
	}
	delete(w.files, absPath)

	dir := filepath.Dir(absPath)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		if !w.stopped {
			return w.fsw.Remove(dir)
		}
	}
	return nil
}

// OnChange registers a handler for file change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins delivering events.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return ErrStopped
	}
	if w.running {
		return nil
	}
	w.running = true

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop stops watching and releases the fsnotify watcher. A stopped
// watcher cannot be restarted.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	w.running = false
	close(w.done)
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// IsRunning returns whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// WatchedFiles returns the watched files, sorted.
func (w *Watcher) WatchedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			onError := w.onError
			w.mu.Unlock()
			if onError != nil {
				onError(err)
			}
		}
	}
}

func (w *Watcher) handleFSEvent(ev fsnotify.Event) {
	op, ok := convertOp(ev.Op)
	if !ok {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, watched := w.files[path]; !watched || w.stopped {
		return
	}

	if w.debounce == 0 {
		go w.emit(Event{Path: path, Op: op, Time: time.Now()})
		return
	}

	if p, ok := w.pending[path]; ok {
		p.op = op
		p.timer.Reset(w.debounce)
		return
	}

	p := &pendingEvent{op: op}
	p.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		pe, ok := w.pending[path]
		if !ok || w.stopped {
			w.mu.Unlock()
			return
		}
		delete(w.pending, path)
		w.mu.Unlock()

		w.emit(Event{Path: path, Op: pe.op, Time: time.Now()})
	})
	w.pending[path] = p
}

func (w *Watcher) emit(event Event) {
	w.mu.Lock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// convertOp maps an fsnotify op to an Operation. Chmod-only events are
// dropped.
func convertOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	default:
		return 0, false
	}
}
