// Package watcher reports changes to a set of source files, debounced.
package watcher

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/lexstyle/internal/log"
	"github.com/zjrosen/lexstyle/internal/pubsub"
)

// DefaultDebounce coalesces editor save bursts into one change.
const DefaultDebounce = 200 * time.Millisecond

// Watcher monitors files for writes and emits each changed path once per
// quiet period.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	files     map[string]struct{}
	debounce  time.Duration
	publisher pubsub.Publisher[string]
	onChange  chan string
	done      chan struct{}
	stopOnce  sync.Once
}

// Config holds watcher configuration options.
type Config struct {
	Files       []string
	DebounceDur time.Duration
	// Publisher, if set, also receives a FileChangedEvent per changed path.
	Publisher pubsub.Publisher[string]
}

// DefaultConfig returns a config watching files with the default debounce.
func DefaultConfig(files ...string) Config {
	return Config{
		Files:       files,
		DebounceDur: DefaultDebounce,
	}
}

// New creates a watcher. Paths are made absolute so events match regardless
// of how the caller spelled them.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}

	files := make(map[string]struct{}, len(cfg.Files))
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		files[abs] = struct{}{}
	}

	debounce := cfg.DebounceDur
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		files:     files,
		debounce:  debounce,
		publisher: cfg.Publisher,
		onChange:  make(chan string, len(files)),
		done:      make(chan struct{}),
	}, nil
}

// Start watches the directories holding the files. Directories are watched
// instead of the files so atomic saves (write temp, rename over) are seen.
func (w *Watcher) Start() (<-chan string, error) {
	dirs := make(map[string]struct{})
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for _, dir := range slices.Sorted(maps.Keys(dirs)) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
		log.Debug(log.CatWatcher, "Watching directory", "dir", dir)
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources. Safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]struct{})
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			path, relevant := w.relevantPath(event)
			if !relevant {
				continue
			}
			pending[path] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			for _, path := range slices.Sorted(maps.Keys(pending)) {
				w.emit(path)
			}
			clear(pending)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watch error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) emit(path string) {
	log.Debug(log.CatWatcher, "File changed", "file", path)
	if w.publisher != nil {
		w.publisher.Publish(pubsub.FileChangedEvent, path)
	}
	// Non-blocking: a reader that is behind already has this path queued
	// or will re-read the file anyway.
	select {
	case w.onChange <- path:
	default:
	}
}

// relevantPath reports whether event is a write or create of a watched file.
func (w *Watcher) relevantPath(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return "", false
	}
	path, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	_, ok := w.files[path]
	return path, ok
}
