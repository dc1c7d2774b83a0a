package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Override watch.debounce"`
	Rescan   time.Duration `help:"Override watch.rescan; re-emit periodically even without changes"`
}

func (w *WatchCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	debounce := cfg.WatchDebounce()
	if w.Debounce > 0 {
		debounce = w.Debounce
	}

	rescan := cfg.WatchRescan()
	if w.Rescan > 0 {
		rescan = w.Rescan
	}

	svc, cleanup := newBuildService(cfg)
	defer cleanup()
	emitOnce := watch.Serialized(func(ctx context.Context) error {
		cfg, err := config.Load(root.Config)
		if err != nil {
			return err
		}
		res, err := svc.Run(ctx, build.BuildRequest{
			Config:  cfg,
			Profile: root.Profile,
			Source:  root.source(),
			Options: build.BuildOptions{SkipGenerate: true},
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(g.out(), "Wrote %s%s\n", res.Emit.Path, unchangedSuffix(res.Emit.Changed))
		return nil
	})

	if err := emitOnce(ctx); err != nil {
		slog.Error("Initial emit failed; waiting for changes", logfields.Error(err))
	}

	watcher, err := watch.NewConfigWatcher(root.Config, debounce, emitOnce)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Stop()
		return err
	}

	if rescan > 0 {
		scheduler, err := watch.NewScheduler()
		if err != nil {
			_ = watcher.Stop()
			return err
		}
		if _, err := scheduler.ScheduleRescan(ctx, rescan, emitOnce); err != nil {
			_ = scheduler.Stop()
			_ = watcher.Stop()
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				slog.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
		slog.Info("Periodic rescan enabled", slog.Duration("interval", rescan))
	}

	select {
	case <-ctx.Done():
	case <-watcher.Done():
	}
	slog.Info("Stopping watch")
	return watcher.Stop()
}
