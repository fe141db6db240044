// Package watcher reports changes below layer directories.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// skippedDirectories are never watched. Scripts keep private state below
// state directories, and changes there do not affect definitions.
var skippedDirectories = map[string]bool{
	domain.StateDirName: true,
	".git":              true,
}

const eventChannelBuffer = 100

// Factory creates a Watcher on demand, so commands that never watch do not
// hold a file system watcher open.
type Factory func() (ports.Watcher, error)

// Watcher implements file system watching using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	events    chan ports.WatchEvent
}

// NewWatcher creates a new file system watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(domain.ErrWatchFailed, err.Error())
	}
	return &Watcher{
		fsWatcher: watcher,
		logger:    logger,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching every root directory recursively. Missing roots are
// skipped.
func (w *Watcher) Start(ctx context.Context, roots ...string) error {
	for _, root := range roots {
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			continue
		}
		for dir := range w.watchRecursively(root) {
			if err := w.fsWatcher.Add(dir); err != nil {
				return zerr.With(zerr.Wrap(domain.ErrWatchFailed, err.Error()), "path", dir)
			}
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events. It ends when the
// context given to Start is done or the watcher is stopped.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// watchRecursively walks the directory tree and yields all directories.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are not watched
			}
			if d.IsDir() {
				if path != root && skippedDirectories[d.Name()] {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent := convertEvent(event)
			if watchEvent == nil {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				return
			}

			if watchEvent.Operation == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					for dir := range w.watchRecursively(event.Name) {
						_ = w.fsWatcher.Add(dir)
					}
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(fmt.Sprintf("watcher: file system error: %v", err))
		}
	}
}

// convertEvent converts an fsnotify event to a ports.WatchEvent. Events for
// files oi writes itself are dropped so a rebuild does not trigger another.
func convertEvent(event fsnotify.Event) *ports.WatchEvent {
	if ignored(event.Name) {
		return nil
	}

	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	case event.Has(fsnotify.Chmod):
		op = ports.OpChmod
	default:
		return nil
	}

	return &ports.WatchEvent{Path: event.Name, Operation: op}
}

func ignored(path string) bool {
	name := filepath.Base(path)
	switch {
	case skippedDirectories[name]:
		return true
	case name == domain.DefinitionsFileName, name == domain.BuiltInDefinitionsFileName:
		return true
	case strings.HasPrefix(name, "."), strings.HasSuffix(name, "~"):
		return true
	}
	return false
}
