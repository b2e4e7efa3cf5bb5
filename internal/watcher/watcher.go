// Package watcher rebuilds the vector index when the source corpus
// changes on disk. It is used by long-running surfaces (HTTP API, MCP)
// so they keep answering from fresh material without a restart.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/legalis-labs/legalis-cli/internal/logger"
)

// DefaultDebounce is the window for batching rapid file changes.
const DefaultDebounce = 2 * time.Second

// RebuildFunc rebuilds the index after the source changed. A failed
// rebuild leaves the previous snapshot serving.
type RebuildFunc func(ctx context.Context) error

// Watcher watches a source document and triggers rebuilds.
type Watcher struct {
	source   string
	debounce time.Duration
	rebuild  RebuildFunc
}

// New creates a watcher for the given source file.
func New(source string, debounce time.Duration, rebuild RebuildFunc) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		source:   filepath.Clean(source),
		debounce: debounce,
		rebuild:  rebuild,
	}
}

// Run blocks watching the source until the context is cancelled.
// Editors often replace files via rename, so the watch is on the
// parent directory with events filtered down to the source path.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.source)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.source), err)
	}

	logger.Info("Watching %s for changes", w.source)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.shouldIgnore(event) {
				continue
			}
			logger.Debug("Source changed: %s (%s)", event.Name, event.Op)
			if !pending {
				timer.Reset(w.debounce)
				pending = true
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		case <-timer.C:
			pending = false
			if err := w.rebuild(ctx); err != nil {
				logger.Warn("Rebuild failed, keeping previous index: %v", err)
				continue
			}
			logger.Info("Index rebuilt after source change")
		}
	}
}

// shouldIgnore filters out events for other files and no-op operations.
func (w *Watcher) shouldIgnore(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.source {
		return true
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return true
	}
	return false
}
