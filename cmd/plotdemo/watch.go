package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 300 * time.Millisecond

// watchTitle calls onChange each time the file at path is written,
// until ctx is done. Events are debounced, and the parent directory is
// watched so that editors saving through a rename are supported.
func watchTitle(ctx context.Context, path string, onChange func() error, onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	absPath, _ := filepath.Abs(path)

	var (
		debounce   *time.Timer
		debounceCh <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if eventAbs, _ := filepath.Abs(event.Name); eventAbs != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.NewTimer(watchDebounce)
			debounceCh = debounce.C

		case <-debounceCh:
			debounce, debounceCh = nil, nil
			if err := onChange(); err != nil {
				onError(err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onError(err)
		}
	}
}
