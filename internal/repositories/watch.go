package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/desertthunder/rankr/internal/models"
	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long [FileStore.Watch] waits for writes to settle before reloading.
var WatchDebounce = 100 * time.Millisecond

// Watch calls fn with the freshly loaded board every time its file is written, until ctx is done.
//
// The directory is watched rather than the file because saves replace the file by rename.
// Bursts of events are collapsed into one reload. Load failures are passed to fn as err.
func (s *FileStore) Watch(ctx context.Context, name string, fn func(*models.Leaderboard, error)) error {
	if err := s.checkName(name); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	target := filepath.Base(s.Path(name))
	timer := time.NewTimer(WatchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(WatchDebounce)

		case <-timer.C:
			fn(s.Load(name))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("watcher: %w", err))
		}
	}
}
