// Package watch re-triggers validation when files under a directory change.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thoreinstein/qgate/internal/errors"
	"github.com/thoreinstein/qgate/internal/logging"
)

// Handler is called once per settled burst of changes with the changed
// paths, sorted. Calls never overlap. Events raised while a handler runs,
// including writes made by the handler itself, are dropped.
type Handler func(ctx context.Context, changed []string)

// Watcher recursively watches a directory tree using fsnotify.
type Watcher struct {
	root     string
	ignore   []string
	debounce time.Duration
	fw       *fsnotify.Watcher
}

// New creates a watcher rooted at root. Any path component matching an
// ignore pattern (filepath.Match syntax) is skipped, as is everything
// beneath it.
func New(root string, ignore []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		return nil, errors.Newf("watch: debounce must be positive, got %s", debounce)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watch: create watcher")
	}

	w := &Watcher{
		root:     root,
		ignore:   ignore,
		debounce: debounce,
		fw:       fw,
	}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Dirs returns the directories currently being watched.
func (w *Watcher) Dirs() []string {
	dirs := w.fw.WatchList()
	slices.Sort(dirs)
	return dirs
}

// Run delivers debounced changes to fn until ctx is done, then closes the
// watcher. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	defer w.Close()
	logger := logging.FromContext(ctx)

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			logger.Log(ctx, logging.LevelTrace, "fs event", "path", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) {
				// New directories need their own watch.
				if err := w.addTree(event.Name); err != nil {
					logger.Debug("watch: add new path", "path", event.Name, "error", err)
				}
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			slices.Sort(changed)

			logger.Info("changes detected", "files", len(changed))
			fn(ctx, changed)
			if dropped := w.drain(ctx); dropped > 0 {
				logger.Debug("dropped events raised during run", "events", dropped)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// drain discards events until none has arrived for one debounce period,
// so changes made by the checks themselves do not start another run. New
// directories are still watched. It returns the number of events dropped.
func (w *Watcher) drain(ctx context.Context) int {
	quiet := time.NewTimer(w.debounce)
	defer quiet.Stop()

	dropped := 0
	for {
		select {
		case <-ctx.Done():
			return dropped
		case <-quiet.C:
			return dropped
		case event, ok := <-w.fw.Events:
			if !ok {
				return dropped
			}
			if event.Has(fsnotify.Create) && !w.ignored(event.Name) {
				_ = w.addTree(event.Name)
			}
			dropped++
			quiet.Reset(w.debounce)
		case _, ok := <-w.fw.Errors:
			if !ok {
				return dropped
			}
		}
	}
}

// Close stops watching. It is safe to call more than once and after Run.
func (w *Watcher) Close() error {
	return errors.Wrap(w.fw.Close(), "watch: close")
}

// addTree watches dir and every non-ignored directory below it. A path that
// is not a directory is a no-op.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return errors.Wrapf(err, "watch: %s", path)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.ignored(path) {
			return filepath.SkipDir
		}
		return errors.Wrapf(w.fw.Add(path), "watch: add %s", path)
	})
}

// ignored reports whether any component of path below root matches an
// ignore pattern.
func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		for _, pattern := range w.ignore {
			if ok, _ := filepath.Match(pattern, part); ok {
				return true
			}
		}
	}
	return false
}
