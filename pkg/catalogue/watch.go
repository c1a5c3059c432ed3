package catalogue

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of filesystem events an editor save
// produces into one reload.
const debounceDelay = 100 * time.Millisecond

// Watch reloads the matcher from path whenever the file changes, until ctx
// is cancelled. The parent directory is watched rather than the file
// itself, because editors that save via rename would otherwise detach the
// watch. Reload failures are logged and the previous collection stays
// active.
func (m *Matcher) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	base := filepath.Base(path)
	m.log.Info("watching catalogue", "path", path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if pending == nil {
				pending = time.After(debounceDelay)
			}

		case <-pending:
			pending = nil
			entries, err := LoadFile(path)
			if err != nil {
				m.log.Error("catalogue reload failed", "path", path, "error", err)
				continue
			}
			if err := m.Reload(entries); err != nil {
				m.log.Error("catalogue reload rejected", "path", path, "error", err)
				continue
			}
			m.log.Info("catalogue reloaded", "path", path, "entries", m.Len())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.log.Error("catalogue watch error", "error", err)
		}
	}
}
