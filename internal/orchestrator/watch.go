package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"stylecfg/internal/interfaces"
)

// watchDebounce coalesces the burst of events editors emit for one save
const watchDebounce = 100 * time.Millisecond

// ResultFunc receives each resolution attempt made by Watch
type ResultFunc func(resolved *interfaces.ResolvedConfig, err error)

// Watch resolves the design config once, then again after every change to
// the file, until ctx is cancelled. Resolution failures are reported through
// onResult and do not stop the watch.
func (o *Orchestrator) Watch(ctx context.Context, settings *interfaces.Settings, onResult ResultFunc) error {
	path, err := filepath.Abs(settings.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", settings.ConfigFile, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: many editors save by renaming a temp file over the original
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	logger := o.logger()
	logger.Info().Str("source", path).Msg("watching for changes")
	onResult(o.ResolveFile(path, settings))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(watchDebounce)

		case <-pending:
			pending = nil
			logger := o.logger()
			logger.Debug().Str("source", path).Msg("change detected")
			onResult(o.ResolveFile(path, settings))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger := o.logger()
			logger.Error().Err(err).Msg("file watcher error")
		}
	}
}
