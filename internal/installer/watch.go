package installer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watch calls onRemoved once when root is deleted or renamed away. It
// blocks until ctx is done or the removal has been reported.
func Watch(ctx context.Context, root string, log zerolog.Logger, onRemoved func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	root = filepath.Clean(root)
	if err := w.Add(filepath.Dir(root)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(root), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != root {
				continue
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				log.Warn().Str("root", root).Msg("platform-tools directory removed")
				onRemoved()
				return nil
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("install watcher error")
		}
	}
}
