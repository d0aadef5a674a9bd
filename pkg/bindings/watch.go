package bindings

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leterax/opal/pkg/log"
)

const debounce = 100 * time.Millisecond

// Watch reloads the bindings file at path whenever it changes and sends the
// result on the returned channel. A file that fails to load is logged and
// skipped, so the receiver keeps whatever it had before. The channel is
// closed once ctx is done.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are picked up.
func Watch(ctx context.Context, path string, lg *log.Logger) (<-chan Bindings, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	ch := make(chan Bindings, 1)
	go func() {
		defer close(ch)
		defer w.Close()

		// A burst of events for one save collapses into a single reload
		// that fires once the file has been quiet for the debounce period.
		timer := time.NewTimer(debounce)
		timer.Stop()

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if filepath.Clean(ev.Name) != path {
					continue
				}
				timer.Reset(debounce)

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				lg.Warnf("%s: watch error: %v", path, err)

			case <-timer.C:
				b, err := Load(path)
				if err != nil {
					lg.Warnf("%s: keeping previous bindings: %v", path, err)
					continue
				}
				lg.Infof("%s: reloaded bindings", path)
				select {
				case ch <- b:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}
