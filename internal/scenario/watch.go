package scenario

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces the bursts of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a scenario file whenever it changes.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Logger   zerolog.Logger
}

// NewWatcher returns a watcher for path with the default debounce.
func NewWatcher(path string, logger zerolog.Logger) *Watcher {
	return &Watcher{Path: path, Debounce: DefaultDebounce, Logger: logger}
}

// Run blocks until ctx is done, calling fn with every scenario that reloads
// cleanly. Reload failures are logged and skipped. fn runs on the watching
// goroutine, so calls never overlap.
func (w *Watcher) Run(ctx context.Context, fn func(*Scenario)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(w.Path)
	if err != nil {
		return err
	}
	// the directory is watched since editors often replace the file on save
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.Path, err)
	}
	w.Logger.Info().Str("path", w.Path).Msg("Watching scenario")

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.Logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Scenario file changed")
			debounce.Reset(w.Debounce)

		case <-debounce.C:
			s, err := Load(w.Path)
			if err != nil {
				w.Logger.Error().Err(err).Str("path", w.Path).Msg("Failed to reload scenario")
				continue
			}
			w.Logger.Info().Str("scenario", s.Name).Msg("Scenario reloaded")
			fn(s)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Error().Err(err).Msg("Watcher error")
		}
	}
}
