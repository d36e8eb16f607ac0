package config

import (
	"sync/atomic"

	"github.com/dshills/textops/internal/config/watcher"
)

// ReloadFunc is called after each reload attempt. err is nil when the new
// settings are in effect; otherwise the previous settings remain.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads a Config whenever its file changes.
type Watcher struct {
	cfg      *Config
	fw       *watcher.Watcher
	onReload ReloadFunc
	reloads  atomic.Int64
}

// NewWatcher starts watching cfg's file. Removing the file leaves the
// current settings in place.
func NewWatcher(cfg *Config, onReload ReloadFunc, opts ...watcher.Option) (*Watcher, error) {
	if cfg.Path() == "" {
		return nil, ErrNoFile
	}

	w := &Watcher{
		cfg:      cfg,
		fw:       watcher.New(opts...),
		onReload: onReload,
	}
	if err := w.fw.Watch(cfg.Path()); err != nil {
		return nil, err
	}
	w.fw.OnChange(w.handleFileChange)
	if err := w.fw.Start(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Watcher) handleFileChange(event watcher.Event) {
	if event.Op == watcher.OpRemove || event.Op == watcher.OpRename {
		return
	}

	err := w.cfg.Load()
	w.reloads.Add(1)
	if w.onReload != nil {
		w.onReload(w.cfg, err)
	}
}

// Reloads returns how many reloads have been attempted.
func (w *Watcher) Reloads() int64 {
	return w.reloads.Load()
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fw.Stop()
}
