package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/history"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/notify"
)

// newBuildService wires the build history and notifier configured in cfg.
// The returned cleanup closes them. History that cannot be opened is
// logged and skipped.
func newBuildService(cfg *config.Config) (*build.DefaultBuildService, func()) {
	svc := build.NewBuildService()
	var closers []func()

	if path := cfg.HistoryPath(); path != "" {
		store, err := history.NewSQLiteStore(path)
		if err != nil {
			slog.Warn("Build history disabled", logfields.Path(path), logfields.Error(err))
		} else {
			svc = svc.WithHistory(store, cfg.History.Keep)
			closers = append(closers, func() { _ = store.Close() })
		}
	}

	if n := cfg.Notify.NATS; n.URL != "" {
		notifier := notify.NewNATSNotifier(n.URL, n.Subject, cfg.NATSTimeout())
		svc = svc.WithNotifier(notifier)
		closers = append(closers, notifier.Close)
		slog.Debug("Build notifications enabled", slog.String("url", n.URL), slog.String("subject", n.Subject))
	}

	return svc, func() {
		for _, c := range closers {
			c()
		}
	}
}
