package vault

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher invokes a callback, debounced, when the contents of a directory
// change. If the directory does not exist yet it retries a few times before
// giving up.
type Watcher struct {
	dir      string
	onChange func()
	debounce time.Duration

	// retry settings for a not-yet-created directory
	maxRetries    int
	retryInterval time.Duration
}

// NewWatcher creates a watcher for dir with a 2 second debounce.
func NewWatcher(dir string, onChange func()) *Watcher {
	return &Watcher{
		dir:           dir,
		onChange:      onChange,
		debounce:      2 * time.Second,
		maxRetries:    3,
		retryInterval: 10 * time.Second,
	}
}

// Run watches the directory until ctx is canceled. Rapid sequences of events
// collapse into a single callback after the debounce interval.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.waitForDir(ctx); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	slog.Info("watching directory", "dir", w.dir)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			slog.Info("watcher stopped", "dir", w.dir)
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if pending {
				if !timer.Stop() {
					<-timer.C
				}
			}
			timer.Reset(w.debounce)
			pending = true

		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "dir", w.dir, "error", watchErr)

		case <-timer.C:
			pending = false
			w.onChange()
		}
	}
}

// waitForDir polls for the directory to appear, up to maxRetries attempts.
func (w *Watcher) waitForDir(ctx context.Context) error {
	for attempt := 0; ; attempt++ {
		if _, err := os.Stat(w.dir); err == nil {
			return nil
		}
		if attempt >= w.maxRetries {
			return fmt.Errorf("directory never appeared after %d attempts: %s", w.maxRetries, w.dir)
		}

		slog.Info("directory missing, waiting",
			"dir", w.dir,
			"attempt", attempt+1,
			"max_attempts", w.maxRetries)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.retryInterval):
		}
	}
}
