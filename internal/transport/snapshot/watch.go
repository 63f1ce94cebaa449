package snapshot

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the event bursts that a single snapshot rewrite
// produces into one reload.
const debounceDelay = 250 * time.Millisecond

type watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// newWatcher watches the snapshot's parent directory. Exporters replace
// the file atomically, so a watch on the file itself would be dropped on
// the first rewrite.
func newWatcher(t *Transport, onReload func()) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating snapshot watcher: %w", err)
	}
	dir := filepath.Dir(t.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	w := &watcher{fw: fw, done: make(chan struct{})}
	go w.run(t, onReload)
	return w, nil
}

func (w *watcher) run(t *Transport, onReload func()) {
	base := filepath.Base(t.path)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename) {
				continue
			}
			timer.Reset(debounceDelay)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			t.logger.Warn("snapshot watcher error", "error", err)
		case <-timer.C:
			if err := t.Reload(); err != nil {
				t.logger.Warn("snapshot reload failed", "path", t.path, "error", err)
				continue
			}
			if onReload != nil {
				onReload()
			}
		}
	}
}

func (w *watcher) stop() {
	close(w.done)
	w.fw.Close()
}
