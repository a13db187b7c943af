// Package watch re-runs a callback when a watched file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a single file and invokes a callback on writes,
// debounced so editors that write in bursts trigger one run.
type Watcher struct {
	file     string
	callback func() error
	fsw      *fsnotify.Watcher
}

// New watches file. The directory is watched rather than the file
// itself so replace-on-save editors keep working.
func New(file string, callback func() error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{file: abs, callback: callback, fsw: fsw}, nil
}

// Run blocks, invoking the callback on each change, until the context
// is cancelled. Callback errors are returned to the caller through the
// errs function and do not stop the watch.
func (w *Watcher) Run(ctx context.Context, errs func(error)) error {
	defer w.fsw.Close()

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Name != w.file || !event.Op.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(100*time.Millisecond, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			if err := w.callback(); err != nil && errs != nil {
				errs(err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}
