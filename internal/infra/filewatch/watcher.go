package filewatch

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when New receives a non-positive debounce.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports changes to individual files. Directories are watched rather
// than the files themselves so atomic replace-by-rename is still observed.
type Watcher struct {
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	targets map[string]func()
	timers  map[string]*time.Timer
	fs      *fsnotify.Watcher
	running bool
	stop    chan struct{}
	stopped chan struct{}
}

// New creates a Watcher; call Watch for each file and then Start.
func New(debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		debounce: debounce,
		logger:   logger.With("component", "filewatch.watcher"),
		targets:  make(map[string]func()),
		timers:   make(map[string]*time.Timer),
	}
}

// Watch registers onChange for path. It must be called before Start.
func (w *Watcher) Watch(path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return errors.New("filewatch: watcher already started")
	}
	w.targets[filepath.Clean(abs)] = onChange
	return nil
}

// Start begins delivering events. Calling it twice is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dirs := make(map[string]struct{})
	for path := range w.targets {
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return err
		}
	}

	w.fs = fsw
	w.stop = make(chan struct{})
	w.stopped = make(chan struct{})
	w.running = true
	go w.eventLoop()
	w.logger.Info("watching data files", "files", len(w.targets))
	return nil
}

// Stop shuts down the event loop and cancels pending callbacks.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stop)
	fsw := w.fs
	w.mu.Unlock()

	fsw.Close()
	<-w.stopped

	w.mu.Lock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()
}

func (w *Watcher) eventLoop() {
	defer close(w.stopped)
	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	path := filepath.Clean(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	onChange, ok := w.targets[path]
	if !ok || !w.running {
		return
	}
	if timer, pending := w.timers[path]; pending {
		timer.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		w.logger.Info("data file changed", "path", path)
		onChange()
	})
}
