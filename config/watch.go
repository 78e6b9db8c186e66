package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher reloads a config file when it changes on disk and delivers each
// valid result on Updates. Invalid edits are logged and skipped. Only the
// latest pending config is kept.
type Watcher struct {
	path     string
	logger   *zap.Logger
	fsw      *fsnotify.Watcher
	updates  chan *Config
	done     chan struct{}
	cancel   context.CancelFunc
	debounce time.Duration
}

// Watch starts watching path. The parent directory is watched so that editors
// which replace the file on save are seen.
func Watch(ctx context.Context, path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:     filepath.Clean(path),
		logger:   logger,
		fsw:      fsw,
		updates:  make(chan *Config, 1),
		done:     make(chan struct{}),
		cancel:   cancel,
		debounce: defaultDebounce,
	}
	go w.run(ctx)
	logger.Info("watching config", zap.String("path", path))
	return w, nil
}

// Updates delivers reloaded configs. It is closed when the watcher stops.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.cancel()
	<-w.done
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.updates)
	defer w.fsw.Close()

	tick := time.NewTicker(w.debounce / 4)
	defer tick.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Debug("config changed", zap.String("op", ev.Op.String()))
			pending = time.Now()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))

		case <-tick.C:
			if pending.IsZero() || time.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected", zap.String("path", w.path), zap.Error(err))
		return
	}
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.logger.Info("config reloaded", zap.String("path", w.path))
}
