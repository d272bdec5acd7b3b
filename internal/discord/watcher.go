package discord

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const reloadDebounce = 250 * time.Millisecond

// ErrWatchUnsupported is returned when hot reload is requested on a
// filesystem that fsnotify cannot watch.
var ErrWatchUnsupported = errors.New("hot reload needs the OS filesystem")

// watchEvents reloads the event handlers whenever a file in the events
// directory changes. Bursts of changes cause a single reload.
func (b *Bot) watchEvents(ctx context.Context) error {
	if _, ok := b.fs.(*afero.OsFs); !ok {
		return ErrWatchUnsupported
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := b.addTree(w, b.cfg.EventsDir); err != nil {
		return err
	}
	b.log.Info("watching event files", zap.String("dir", b.cfg.EventsDir))

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := b.fs.Stat(ev.Name); err == nil && info.IsDir() {
					_ = b.addTree(w, ev.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			trigger = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			b.log.Warn("event watcher error", zap.Error(err))
		case <-trigger:
			trigger = nil
			if _, err := b.ReloadEvents(); err != nil {
				b.log.Warn("event reload failed", zap.Error(err))
			}
		}
	}
}

// addTree watches root and every directory below it, walking the same
// filesystem the loader reads from.
func (b *Bot) addTree(w *fsnotify.Watcher, root string) error {
	return afero.Walk(b.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := w.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}
