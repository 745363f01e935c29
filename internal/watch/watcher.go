// Package watch re-runs an export when its input files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"bennypowers.dev/dtexport/internal/collections"
	"bennypowers.dev/dtexport/internal/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the burst of events editors produce on save
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher
type Options struct {
	// Debounce is how long the files must stay quiet before onChange runs.
	// Zero means DefaultDebounce.
	Debounce time.Duration
}

// ChangeFunc is called with the path of the last file that changed
type ChangeFunc func(ctx context.Context, path string)

// Watcher watches a fixed set of files. It watches their parent directories,
// so files replaced by atomic saves are still seen, and ignores everything
// else in those directories.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    collections.Set[string]
	dirs     collections.Set[string]
	onChange ChangeFunc
	debounce time.Duration

	// Debouncing
	timer      *time.Timer
	debounceMu sync.Mutex

	// runMu keeps onChange calls from overlapping
	runMu sync.Mutex

	// Lifecycle
	stopChan chan struct{}
	done     chan struct{}
	started  bool
	stopped  bool
	mu       sync.Mutex
}

// New creates a watcher for paths. Nothing is watched until Start.
func New(paths []string, onChange ChangeFunc, opts Options) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files to watch")
	}
	if onChange == nil {
		return nil, errors.New("onChange is required")
	}

	files := collections.NewSet[string]()
	dirs := collections.NewSet[string]()
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		files.Add(abs)
		dirs.Add(filepath.Dir(abs))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:  fsw,
		files:    files,
		dirs:     dirs,
		onChange: onChange,
		debounce: opts.Debounce,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. The event loop ends on Stop or when ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return errors.New("watcher already stopped")
	}
	if w.started {
		return errors.New("watcher already started")
	}

	for _, dir := range w.dirs.Members() {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		log.Debug("Watching %s", dir)
	}
	w.started = true

	go w.eventLoop(ctx)
	return nil
}

// Stop stops watching and waits for the event loop to exit. A change that is
// still waiting out its debounce is dropped. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	close(w.stopChan)
	w.mu.Unlock()

	w.debounceMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	if started {
		<-w.done
	}
	return err
}

func (w *Watcher) eventLoop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("File watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	path := filepath.Clean(event.Name)
	if !w.files.Has(path) {
		return
	}
	log.Debug("File change: %s (%s)", path, event.Op)

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.run(ctx, path)
	})
}

func (w *Watcher) run(ctx context.Context, path string) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	select {
	case <-w.stopChan:
		return
	case <-ctx.Done():
		return
	default:
	}
	w.onChange(ctx, path)
}
