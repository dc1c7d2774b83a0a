package config

import (
	"git.home.luguber.info/inful/docsite/internal/site"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only declaration file version this build understands.
const CurrentVersion = "1.0"

// Config is the docsite declaration file.
type Config struct {
	Version      string                          `yaml:"version"`
	Project      ProjectConfig                   `yaml:"project"`
	Integrations []Integration                   `yaml:"integrations"`
	Profiles     map[string]map[string]yaml.Node `yaml:"profiles,omitempty"`
	Logging      LoggingConfig                   `yaml:"logging,omitempty"`
	Metrics      MetricsConfig                   `yaml:"metrics,omitempty"`
	Watch        WatchConfig                     `yaml:"watch,omitempty"`
	History      HistoryConfig                   `yaml:"history,omitempty"`
	Notify       NotifyConfig                    `yaml:"notify,omitempty"`

	// Decoded integration options, populated by Load.
	Site            site.Declaration            `yaml:"-"`
	ProfileSites    map[string]site.Declaration `yaml:"-"`
	configDirectory string
}

// ProjectConfig locates the generator project and selects the target.
type ProjectConfig struct {
	Root       string         `yaml:"root"`        // generator project root, relative to the declaration file
	Target     Target         `yaml:"target"`      // astro | hugo
	Output     string         `yaml:"output"`      // generator output directory, relative to root
	PublicDir  string         `yaml:"public_dir"`  // served at "/", relative to root
	ContentDir string         `yaml:"content_dir"` // documentation pages, relative to root
	Generate   GenerateConfig `yaml:"generate,omitempty"`
}

// GenerateConfig controls invocation of the external generator.
type GenerateConfig struct {
	Skip    bool     `yaml:"skip,omitempty"`
	Command []string `yaml:"command,omitempty"` // overrides the target's default command
	Timeout string   `yaml:"timeout,omitempty"` // Go duration, empty means no timeout
}

// Integration is one entry of the ordered integrations list.
type Integration struct {
	Name    string    `yaml:"name"`
	Options yaml.Node `yaml:"options,omitempty"`
}

// MetricsConfig configures the optional Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// WatchConfig configures `docsite watch`.
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"`
	Rescan   string `yaml:"rescan,omitempty"` // periodic rebuild interval, empty disables
}

// HistoryConfig controls the build history database.
type HistoryConfig struct {
	Disabled bool   `yaml:"disabled,omitempty"`
	Path     string `yaml:"path,omitempty"` // relative to project root
	Keep     int    `yaml:"keep,omitempty"` // newest entries retained
}

// NotifyConfig configures build completion notifications.
type NotifyConfig struct {
	NATS NATSConfig `yaml:"nats,omitempty"`
}

// NATSConfig publishes one message per build when URL is set.
type NATSConfig struct {
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// Known integration names.
const (
	IntegrationStarlight = site.PluginNameStarlight
	IntegrationTailwind  = site.PluginNameTailwind
)

// themeOptionKeys are the documentation theme options docsite understands.
var themeOptionKeys = map[string]bool{
	"title": true, "favicon": true, "logo": true, "customCss": true,
	"social": true, "components": true, "sidebar": true,
}

var stylingOptionKeys = map[string]bool{"applyBaseStyles": true}

// Dir returns the directory of the declaration file Load read.
func (c *Config) Dir() string {
	if c.configDirectory == "" {
		return "."
	}
	return c.configDirectory
}
