package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bassista/go_sitedesk/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// WatchFile calls onChange after path is written, created or replaced.
// It watches the parent directory (not the file) so atomic replace sequences
// (temp+rename) are still observed, and debounces bursts into one call.
// Cancel ctx to stop the watcher.
func WatchFile(ctx context.Context, path string, onChange func()) error {
	if path == "" {
		return errors.New("watch path is required")
	}
	if onChange == nil {
		return errors.New("onChange callback is required")
	}

	dir, base := filepath.Dir(path), filepath.Base(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, onChange)
		}

		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithComponent("config").Warnf("watcher error: %v", err)
			}
		}
	}()

	return nil
}
