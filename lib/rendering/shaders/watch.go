package shaders

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jhenstridge/go-inotify"
)

// Watcher reports when a shader asset has been rewritten. It only signals;
// rebuilding the program is left to the render thread, which owns the GL
// context.
type Watcher struct {
	path    string
	watcher *inotify.Watcher
	changed chan struct{}
}

// Watch starts watching filename. The containing directory is watched so
// editors that save by renaming a temporary file are noticed too.
func Watch(filename string) (*Watcher, error) {
	path, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}

	watcher, err := inotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create inotify watcher: %w", err)
	}
	_, err = watcher.Watch(filepath.Dir(path))
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("could not watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    path,
		watcher: watcher,
		changed: make(chan struct{}, 1),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	name := filepath.Base(w.path)
	for ev := range w.watcher.Event {
		// names are relative to the watched directory
		if ev.Name != name {
			continue
		}
		if ev.Mask&(inotify.IN_CLOSE_WRITE|inotify.IN_MOVED_TO) == 0 {
			continue
		}
		slog.Debug(fmt.Sprintf("%s changed", w.path), slog.String("module", "shaders"))
		select {
		case w.changed <- struct{}{}:
		default:
		}
	}
}

// Changed receives a value after the file has been written. Several writes
// between two reads collapse into one notification.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watch and returns the first error inotify reported.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
