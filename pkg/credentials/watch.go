package credentials

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the new session each time the stored token
// changes on disk, for example after 'dashctl login' in another terminal.
// It blocks until ctx is done and then returns ctx.Err().
//
// Partial writes that fail to parse are ignored; the next complete write is
// reported.
func (m *Manager) Watch(ctx context.Context, log *slog.Logger, onChange func(Session)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating credentials watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and os.WriteFile may replace the file.
	if err := watcher.Add(filepath.Dir(m.targetPath)); err != nil {
		return fmt.Errorf("watching credentials dir: %w", err)
	}

	last, err := m.Session()
	if err != nil {
		log.Warn("reading credentials", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(m.targetPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			session, err := m.Session()
			if err != nil {
				log.Debug("ignoring unreadable credentials", "error", err)
				continue
			}
			if session.Token == last.Token {
				continue
			}

			last = session
			onChange(session)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("credentials watcher error: %w", err)
		}
	}
}
