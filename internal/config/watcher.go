package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed indicates an operation on a closed watcher.
var ErrWatcherClosed = errors.New("config watcher closed")

// ReloadHandler receives the freshly loaded configuration after the
// watched file changes. Load errors are passed through so the caller can
// log them and keep the previous settings.
type ReloadHandler func(cfg Config, err error)

// Watcher reloads the configuration when its file is rewritten. Rapid
// write bursts, as editors produce on save, are debounced into a single
// reload.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	handler  ReloadHandler
	debounce time.Duration
	timer    *time.Timer
	closed   bool
	done     chan struct{}
}

// Watch starts watching path and invokes handler after each change. The
// watched directory is registered rather than the file itself so
// rename-and-replace saves keep working.
func Watch(path string, handler ReloadHandler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		path:     filepath.Clean(path),
		handler:  handler,
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// schedule arms the debounce timer, replacing any pending reload.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		cfg, err := Load(w.path)
		w.handler(cfg, err)
	})
}
