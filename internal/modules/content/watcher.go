package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch purges the scan cache whenever a file under the root changes. It
// blocks until ctx is cancelled. New category directories are watched as they
// appear.
func (r *Repository) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create content watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(r.root); err != nil {
		return fmt.Errorf("watch %s: %w", r.root, err)
	}
	for _, name := range r.scanCategories() {
		if err := watcher.Add(filepath.Join(r.root, name)); err != nil {
			r.log.Warn("watch category failed", zap.String("category", name), zap.Error(err))
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			r.log.Debug("content changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			r.Invalidate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("content watcher error", zap.Error(err))
		}
	}
}
