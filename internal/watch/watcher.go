package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"arithma_tech/pkg/logger"
)

const dropBuffer = 32

// Watcher reports regular files created in a drop directory.
type Watcher struct {
	dir       string
	fsWatcher *fsnotify.Watcher
	drops     chan string
	l         logger.Interface
}

// New watches dir, which must exist.
func New(dir string, l logger.Interface) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	return &Watcher{
		dir:       dir,
		fsWatcher: fsWatcher,
		drops:     make(chan string, dropBuffer),
		l:         l,
	}, nil
}

// Drops delivers absolute paths of new files. It is closed when Run returns.
func (w *Watcher) Drops() <-chan string {
	return w.drops
}

// Dir -.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run forwards create events until ctx is done, then closes the fsnotify watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.drops)
	defer w.fsWatcher.Close()

	w.l.Info("watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil {
				if !os.IsNotExist(err) {
					w.l.Warn("stat %s: %v", event.Name, err)
				}
				continue
			}
			if info.IsDir() {
				continue
			}

			path, err := filepath.Abs(event.Name)
			if err != nil {
				path = event.Name
			}

			select {
			case w.drops <- path:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.l.Error(err, "watch - fsnotify")
		}
	}
}
