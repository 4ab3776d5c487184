package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/controls"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a settings file whenever it changes on disk.
// The parent directory is watched so editors that replace the file on save are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	path     string
	base     controls.Settings
	debounce time.Duration
	timer    *time.Timer
	logger   *log.Logger

	onChange func(controls.Settings)
	onError  func(error)

	closed bool
}

// WatcherOption is a functional option for configuring a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the file must stay quiet before it is reloaded. Defaults to 100ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithBase sets the settings absent fields fall back to. Defaults to controls.DefaultSettings().
func WithBase(base controls.Settings) WatcherOption {
	return func(w *Watcher) {
		w.base = base
	}
}

// WithErrorHandler sets the function called when a reload fails.
// By default the error is logged and the previous settings stay in effect.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// WithWatcherLogger sets the logger used by the default error handler.
func WithWatcherLogger(logger *log.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a watcher for a settings file. Call Start to begin delivering changes.
//
// Parameters:
//   - path: the settings file
//   - onChange: called with the reloaded settings after each change
//   - options: functional options to configure the watcher
//
// Returns:
//   - *Watcher: the watcher
//   - error: error if the file system watcher cannot be created
func NewWatcher(path string, onChange func(controls.Settings), options ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsw,
		path:     absPath,
		base:     controls.DefaultSettings(),
		debounce: 100 * time.Millisecond,
		logger:   log.Default(),
		onChange: onChange,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.onError == nil {
		w.onError = func(err error) {
			w.logger.Printf("config reload failed: %v", err)
		}
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", absPath, err)
	}
	return w, nil
}

// Start begins watching for file changes in a background goroutine.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				// Only trigger on write or create events
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					w.schedule()
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.onError(fmt.Errorf("watcher error: %w", err))
			}
		}
	}()
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	s, err := Load(w.path, w.base)
	if err != nil {
		w.onError(err)
		return
	}
	if w.onChange != nil {
		w.onChange(s)
	}
}

// Close stops the watcher. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
