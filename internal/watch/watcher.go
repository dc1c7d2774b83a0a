// Package watch re-runs a callback when the declaration file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// ReloadFunc is invoked after a debounced change. Errors are logged and the
// watcher keeps running.
type ReloadFunc func(ctx context.Context) error

// Serialized wraps fn so that calls never overlap. Share the returned func
// between a ConfigWatcher and a Scheduler driving the same work.
func Serialized(fn ReloadFunc) ReloadFunc {
	var mu sync.Mutex
	return func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		return fn(ctx)
	}
}

// ConfigWatcher monitors the declaration file and its .env files.
type ConfigWatcher struct {
	configPath string
	watched    map[string]bool
	watcher    *fsnotify.Watcher
	debounce   time.Duration
	onChange   ReloadFunc

	mu       sync.Mutex
	started  bool
	stopChan chan struct{}
	done     chan struct{}
}

// NewConfigWatcher creates a watcher for configPath. A non-positive debounce
// reloads on every event.
func NewConfigWatcher(configPath string, debounce time.Duration, onChange ReloadFunc) (*ConfigWatcher, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &ConfigWatcher{
		configPath: absPath,
		watched: map[string]bool{
			filepath.Base(absPath): true,
			".env":                 true,
			".env.local":           true,
		},
		watcher:  watcher,
		debounce: debounce,
		onChange: onChange,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins monitoring. It returns once the watch is registered.
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.started {
		return fmt.Errorf("config watcher already started")
	}

	// Watching the directory survives editors that replace the file.
	configDir := filepath.Dir(cw.configPath)
	if err := cw.watcher.Add(configDir); err != nil {
		return fmt.Errorf("failed to watch config directory %s: %w", configDir, err)
	}
	cw.started = true

	slog.Info("Starting configuration watcher", logfields.ConfigPath(cw.configPath), slog.Duration("debounce", cw.debounce))
	go cw.loop(ctx)
	return nil
}

// Stop ends monitoring and waits for an in-flight reload to return.
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	started := cw.started
	select {
	case <-cw.stopChan:
	default:
		close(cw.stopChan)
	}
	cw.mu.Unlock()

	if started {
		<-cw.done
	}
	return cw.watcher.Close()
}

// Done is closed when the watch loop exits.
func (cw *ConfigWatcher) Done() <-chan struct{} { return cw.done }

func (cw *ConfigWatcher) loop(ctx context.Context) {
	defer close(cw.done)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopChan:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !cw.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(cw.debounce)
			} else {
				timer.Reset(cw.debounce)
			}
			fire = timer.C
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Config watcher error", logfields.Error(err))
		case <-fire:
			fire = nil
			cw.reload(ctx)
		}
	}
}

func (cw *ConfigWatcher) relevant(event fsnotify.Event) bool {
	if !cw.watched[filepath.Base(event.Name)] {
		return false
	}
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
		slog.Debug("Config change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
		return true
	case event.Has(fsnotify.Remove):
		slog.Warn("Config file removed", logfields.Path(event.Name))
	}
	return false
}

func (cw *ConfigWatcher) reload(ctx context.Context) {
	slog.Info("Reloading configuration", logfields.ConfigPath(cw.configPath))
	start := time.Now()
	if err := cw.onChange(ctx); err != nil {
		slog.Error("Failed to reload configuration", logfields.ConfigPath(cw.configPath), logfields.Error(err))
		return
	}
	slog.Info("Configuration reloaded", logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}
