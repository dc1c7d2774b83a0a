package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// ValidateConfig checks the declaration file structure. Site semantics
// (title, title render source, slots) are checked by site.Build.
func ValidateConfig(cfg *Config) error {
	validator := &configurationValidator{config: cfg}
	return validator.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateProject(); err != nil {
		return err
	}
	if err := cv.validateProfiles(); err != nil {
		return err
	}
	if err := cv.validateHistory(); err != nil {
		return err
	}
	if err := cv.validateNotify(); err != nil {
		return err
	}
	return cv.validateDurations()
}

func (cv *configurationValidator) validateProject() error {
	p := cv.config.Project
	if _, ok := layoutDefaults[p.Target]; !ok {
		return ferrors.ConfigError(fmt.Sprintf("unsupported project.target: %q", p.Target)).
			WithField("project.target").
			WithHint("valid targets: " + strings.Join(Targets(), ", ")).
			Build()
	}
	for i, arg := range p.Generate.Command {
		if strings.TrimSpace(arg) == "" {
			return ferrors.ConfigError(fmt.Sprintf("project.generate.command[%d] is empty", i)).
				WithField(fmt.Sprintf("project.generate.command[%d]", i)).
				Build()
		}
	}
	return nil
}

func (cv *configurationValidator) validateProfiles() error {
	for name, entries := range cv.config.Profiles {
		if strings.TrimSpace(name) == "" {
			return ferrors.ConfigError("profile name cannot be empty").Build()
		}
		for integ := range entries {
			if integ != IntegrationStarlight && integ != IntegrationTailwind {
				return ferrors.ConfigError(fmt.Sprintf("profile %q: unknown integration %q", name, integ)).Build()
			}
		}
	}
	return nil
}

func (cv *configurationValidator) validateHistory() error {
	if cv.config.History.Keep < 0 {
		return ferrors.ConfigError("history.keep must not be negative").WithField("history.keep").Build()
	}
	return nil
}

func (cv *configurationValidator) validateNotify() error {
	n := cv.config.Notify.NATS
	if n.URL == "" {
		return nil
	}
	u, err := url.Parse(n.URL)
	if err != nil || u.Host == "" {
		return ferrors.ConfigError(fmt.Sprintf("invalid notify.nats.url: %q", n.URL)).
			WithField("notify.nats.url").
			WithHint("expected nats://host:port").
			Build()
	}
	if strings.ContainsAny(n.Subject, " \t*>") {
		return ferrors.ConfigError(fmt.Sprintf("invalid notify.nats.subject: %q", n.Subject)).
			WithField("notify.nats.subject").
			WithHint("publish subjects cannot contain whitespace or wildcards").
			Build()
	}
	return nil
}

func (cv *configurationValidator) validateDurations() error {
	durations := map[string]string{
		"project.generate.timeout": cv.config.Project.Generate.Timeout,
		"watch.debounce":           cv.config.Watch.Debounce,
		"watch.rescan":             cv.config.Watch.Rescan,
		"notify.nats.timeout":      cv.config.Notify.NATS.Timeout,
	}
	for field, raw := range durations {
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, fmt.Sprintf("invalid %s", field)).WithField(field).Build()
		}
		if d < 0 {
			return ferrors.ConfigError(fmt.Sprintf("%s must not be negative", field)).WithField(field).Build()
		}
	}
	return nil
}

// GenerateTimeout returns the parsed generator timeout, zero when unset.
func (c *Config) GenerateTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Project.Generate.Timeout)
	return d
}

// WatchDebounce returns the parsed watcher debounce interval.
func (c *Config) WatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaultWatchDebounce)
	}
	return d
}

// WatchRescan returns the periodic rebuild interval, zero when disabled.
func (c *Config) WatchRescan() time.Duration {
	d, _ := time.ParseDuration(c.Watch.Rescan)
	return d
}

// NATSTimeout returns the parsed notification timeout.
func (c *Config) NATSTimeout() time.Duration {
	d, err := time.ParseDuration(c.Notify.NATS.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaultNATSTimeout)
	}
	return d
}

// HistoryPath returns the absolute path of the build history database, or
// "" when history is disabled.
func (c *Config) HistoryPath() string {
	if c.History.Disabled {
		return ""
	}
	if filepath.IsAbs(c.History.Path) {
		return c.History.Path
	}
	return filepath.Join(c.Project.Root, c.History.Path)
}
