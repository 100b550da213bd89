package dataset

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Dav0ud/imagegridviewer/internal/log"
)

// debounceDelay coalesces the burst of write events an editor save produces
// into a single reload.
const debounceDelay = 200 * time.Millisecond

// Watcher monitors a suffix file for changes using fsnotify and invokes a
// callback when it is rewritten, created or replaced. The callback runs on
// the watcher goroutine; callers are responsible for hopping back onto
// their own event loop.
type Watcher struct {
	path     string
	onChange func()

	fsWatcher *fsnotify.Watcher
	stopChan  chan struct{}

	// Lock for the running state
	mutex   sync.RWMutex
	running bool
}

// NewWatcher creates a watcher for the suffix file at path.
func NewWatcher(path string, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:      path,
		onChange:  onChange,
		fsWatcher: fsWatcher,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start begins watching. The containing directory is watched rather than the
// file itself so that delete-and-recreate saves keep being observed.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return nil
	}

	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}

	w.running = true
	go w.loop()
	log.Debugf("watching suffix file %s", w.path)
	return nil
}

func (w *Watcher) loop() {
	var timer *time.Timer
	target := filepath.Clean(w.path)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, w.onChange)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warnf("suffix watcher error: %v", err)
		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Stop ends watching and releases the fsnotify handle.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopChan)
	w.fsWatcher.Close()
}

// Running reports whether the watcher is active.
func (w *Watcher) Running() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
