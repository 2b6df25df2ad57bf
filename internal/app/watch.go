package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports changes to a single file. The parent directory is
// watched so editors that save by rename are still seen. Bursts of events are
// coalesced by a Debouncer.
type FileWatcher struct {
	path     string
	debounce *Debouncer
	onChange func(path string)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	done    chan struct{}
}

// NewFileWatcher creates a watcher for path. delay of zero uses DefaultSaveDelay.
func NewFileWatcher(path string, delay time.Duration) *FileWatcher {
	return &FileWatcher{
		path:     filepath.Clean(path),
		debounce: NewDebouncer(delay),
	}
}

// OnChange sets the callback invoked after the file settles. It runs on a
// background goroutine.
func (w *FileWatcher) OnChange(callback func(path string)) {
	w.onChange = callback
}

// Path returns the watched file.
func (w *FileWatcher) Path() string {
	return w.path
}

// Start begins watching. Calling Start twice is an error.
func (w *FileWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return fmt.Errorf("watcher already started")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.watcher = fw
	w.stopCh = make(chan struct{})
	w.done = make(chan struct{})
	go w.watchLoop(fw, w.stopCh, w.done)
	slog.Info("watching roster file", "path", w.path)
	return nil
}

// Stop ends the watch and drops any pending notification.
func (w *FileWatcher) Stop() {
	w.mu.Lock()
	fw, stopCh, done := w.watcher, w.stopCh, w.done
	w.watcher = nil
	w.mu.Unlock()
	if fw == nil {
		return
	}
	close(stopCh)
	_ = fw.Close()
	<-done
	w.debounce.Cancel()
}

func (w *FileWatcher) watchLoop(fw *fsnotify.Watcher, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stopCh:
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.debounce.Trigger(func() {
				if w.onChange != nil {
					w.onChange(w.path)
				}
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			slog.Warn("roster watcher error", "path", w.path, "error", err)
		}
	}
}
