package config

import (
	"path/filepath"
)

// Per-target project layout defaults.
var layoutDefaults = map[Target]struct{ public, content, output string }{
	TargetAstro: {public: "public", content: "src/content/docs", output: "dist"},
	TargetHugo:  {public: "static", content: "content", output: "public"},
}

const (
	defaultWatchDebounce = "500ms"
	defaultHistoryPath   = ".docsite/history.db"
	defaultHistoryKeep   = 100
	defaultNATSSubject   = "docsite.builds"
	defaultNATSTimeout   = "5s"
)

// applyDefaults fills unset fields. Project.Root becomes absolute, resolved
// against the declaration file's directory.
func applyDefaults(cfg *Config) error {
	if cfg.Project.Target == "" {
		cfg.Project.Target = TargetAstro
	}
	layout := layoutDefaults[cfg.Project.Target]

	root := cfg.Project.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(cfg.Dir(), root)
	}
	cfg.Project.Root = filepath.Clean(root)

	if cfg.Project.Output == "" {
		cfg.Project.Output = layout.output
	}
	if cfg.Project.PublicDir == "" {
		cfg.Project.PublicDir = layout.public
	}
	if cfg.Project.ContentDir == "" {
		cfg.Project.ContentDir = layout.content
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = defaultWatchDebounce
	}
	if cfg.History.Path == "" {
		cfg.History.Path = defaultHistoryPath
	}
	if cfg.History.Keep == 0 {
		cfg.History.Keep = defaultHistoryKeep
	}
	if cfg.Notify.NATS.URL != "" {
		if cfg.Notify.NATS.Subject == "" {
			cfg.Notify.NATS.Subject = defaultNATSSubject
		}
		if cfg.Notify.NATS.Timeout == "" {
			cfg.Notify.NATS.Timeout = defaultNATSTimeout
		}
	}
	return nil
}
