package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when adding paths to a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// Watcher reports changes to keymap and script files. Rapid changes to one
// path are coalesced into a single event delivered after the debounce
// delay.
type Watcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	logger  *slog.Logger
	delay   time.Duration

	// files are watched files; dirs are watched directories. A file is
	// watched through its directory so atomic saves are seen.
	files map[string]bool
	dirs  map[string]bool

	pending map[string]*time.Timer
	events  chan string

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher starts a watcher.
func NewWatcher(delay time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}

	w := &Watcher{
		watcher: fsw,
		logger:  logger,
		delay:   delay,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		pending: make(map[string]*time.Timer),
		events:  make(chan string, 64),
		closeCh: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Add watches a file or a directory. Changes to any file inside a watched
// directory are reported.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}

	dir := abs
	if !info.IsDir() {
		dir = filepath.Dir(abs)
		w.files[abs] = true
	} else {
		w.files[abs+string(filepath.Separator)] = true
	}

	if w.dirs[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.dirs[dir] = true
	return nil
}

// Events returns the channel of changed paths. It is closed by Close.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Close stops the watcher and drops pending events.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for p, t := range w.pending {
		t.Stop()
		delete(w.pending, p)
	}
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)
	return w.watcher.Close()
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Chmod) && !ev.Op.Has(fsnotify.Write) {
				continue
			}
			if w.interested(ev.Name) {
				w.schedule(ev.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// interested reports whether path is a watched file or lies in a watched
// directory.
func (w *Watcher) interested(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[path] {
		return true
	}
	return w.files[filepath.Dir(path)+string(filepath.Separator)]
}

// schedule restarts the debounce timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(w.delay)
		return
	}
	w.pending[path] = time.AfterFunc(w.delay, func() { w.fire(path) })
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	delete(w.pending, path)

	select {
	case w.events <- path:
	default:
		w.logger.Warn("watch event dropped", "path", path)
	}
}
