package watcher

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DirWatcher watches one directory (non-recursively) and queues the paths
// of created or written files that pass a filter. Bursts of events for the
// same path are coalesced by a debounce timer.
type DirWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	accept   func(path string) bool
	debounce time.Duration
	logger   *log.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
	events chan string
}

// Options configures a DirWatcher
type Options struct {
	// Accept filters paths; nil accepts everything.
	Accept func(path string) bool
	// Debounce is the quiet period before a changed path is queued.
	Debounce time.Duration
	// QueueSize bounds the number of pending paths. When the queue is full
	// new paths are dropped and logged.
	QueueSize int
	Logger    *log.Logger
}

// NewDirWatcher creates a watcher for dir. Call Start to begin delivering
// events.
func NewDirWatcher(dir string, opts Options) (*DirWatcher, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", dir, err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", absDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absDir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(absDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", absDir, err)
	}

	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	accept := opts.Accept
	if accept == nil {
		accept = func(string) bool { return true }
	}

	return &DirWatcher{
		watcher:  watcher,
		dir:      absDir,
		accept:   accept,
		debounce: opts.Debounce,
		logger:   logger,
		timers:   make(map[string]*time.Timer),
		events:   make(chan string, queueSize),
	}, nil
}

// Dir returns the absolute path of the watched directory
func (w *DirWatcher) Dir() string {
	return w.dir
}

// Events returns the queue of changed paths. The channel is never closed;
// consumers stop via their own context.
func (w *DirWatcher) Events() <-chan string {
	return w.events
}

// Start begins watching for file changes
func (w *DirWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}

				// Only trigger on write or create events
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					w.handleFileChange(event.Name)
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Printf("watcher error: %v", err)
			}
		}
	}()
}

// handleFileChange handles a file change event with debouncing
func (w *DirWatcher) handleFileChange(path string) {
	if !w.accept(path) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.schedule(path)
}

// schedule (re)starts the debounce timer for path. w.mu must be held.
func (w *DirWatcher) schedule(path string) {
	// Cancel existing timer if any
	if timer, exists := w.timers[path]; exists {
		timer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		// Stop cannot cancel a callback that already fired and is waiting
		// for the lock; only the timer currently installed may deliver.
		if w.timers[path] != timer {
			return
		}
		delete(w.timers, path)
		w.send(path)
	})
	w.timers[path] = timer
}

// send queues path without blocking. w.mu must be held.
func (w *DirWatcher) send(path string) {
	select {
	case w.events <- path:
	default:
		w.logger.Printf("event queue full, dropping %s", path)
	}
}

// Close stops the watcher. Pending debounced events are discarded.
func (w *DirWatcher) Close() error {
	w.mu.Lock()
	w.closed = true
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
