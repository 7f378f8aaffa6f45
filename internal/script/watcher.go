package script

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"sliderplot/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the settle time used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// Reload is the outcome of reloading a changed script. Exactly one of
// Script and Err is set.
type Reload struct {
	Script *Script
	Err    error
}

// WatcherStats tracks watcher activity.
type WatcherStats struct {
	Events        int
	Reloads       int
	Failures      int
	LastEventTime time.Time
	LastEventType string
}

// Watcher reloads a script whenever its file settles after a change.
// It watches the parent directory so editors that replace the file on save
// are picked up.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	loader   *Loader
	path     string
	debounce time.Duration
	pending  time.Time
	reloads  chan Reload
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stats    WatcherStats
}

// NewWatcher creates a watcher for the script at path. A non-positive
// debounce selects DefaultDebounce.
func NewWatcher(path string, loader *Loader, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve script path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:  fw,
		loader:   loader,
		path:     abs,
		debounce: debounce,
		reloads:  make(chan Reload, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Reloads delivers reload outcomes. It is never closed.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logging.Watch("watching %s", w.path)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatch).Error("close watcher: %v", err)
	}
}

// Stats returns a copy of the counters.
func (w *Watcher) Stats() WatcherStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.WatchDebug("context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatch).Error("watcher error: %v", err)

		case <-ticker.C:
			if w.settled() {
				w.reload(ctx)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Remove != 0:
		eventType = "delete"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	default:
		return
	}
	logging.WatchDebug("%s event for %s", eventType, event.Name)

	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventType = eventType
	w.pending = time.Now()
	w.mu.Unlock()
}

// settled reports whether a pending change is older than the debounce
// window, and clears it if so.
func (w *Watcher) settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}

func (w *Watcher) reload(ctx context.Context) {
	s, err := w.loader.Load(ctx, w.path)

	w.mu.Lock()
	if err != nil {
		w.stats.Failures++
	} else {
		w.stats.Reloads++
	}
	w.mu.Unlock()

	if err != nil {
		logging.Get(logging.CategoryWatch).Warn("reload %s: %v", w.path, err)
	} else {
		logging.Watch("reloaded %s", w.path)
	}

	select {
	case w.reloads <- Reload{Script: s, Err: err}:
	case <-w.stopCh:
	case <-ctx.Done():
	}
}
