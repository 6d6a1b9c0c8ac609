package config

import (
	"context"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher hot-reloads a tuning file on every write (grounded on the pack's
// filemonitor.Watcher: an fsnotify.Watcher drained in its own goroutine,
// logged through logrus). A failed reload keeps the previous Config
// rather than tearing down the solver mid-search.
type Watcher struct {
	path   string
	notify *fsnotify.Watcher
	logger *logrus.Logger

	mu      sync.RWMutex
	current *Config

	onUpdate func(*Config)
}

// NewWatcher loads path once and begins watching it for further writes.
// onUpdate, if non-nil, fires after every successful reload.
func NewWatcher(path string, logger *logrus.Logger, onUpdate func(*Config)) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := notify.Add(path); err != nil {
		notify.Close()
		return nil, err
	}
	return &Watcher{path: path, notify: notify, logger: logger, current: cfg, onUpdate: onUpdate}, nil
}

// Current returns the live Config, safe for concurrent use with Run.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Run drains fsnotify events in its own goroutine until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.notify.Close()
				return
			case ev, ok := <-w.notify.Events:
				if !ok {
					return
				}
				if ev.Op&fsnotify.Write == 0 {
					continue
				}
				w.reload()
			case err, ok := <-w.notify.Errors:
				if !ok {
					return
				}
				w.logger.WithError(err).Warn("config watcher error")
			}
		}
	}()
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.WithError(err).Warn("config reload failed, keeping previous tuning")
		return
	}
	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()
	w.logger.Info("reloaded tuning file")
	if w.onUpdate != nil {
		w.onUpdate(cfg)
	}
}
