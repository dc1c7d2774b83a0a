package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the declaration file looked up when -c is not given.
const DefaultPath = "docsite.yaml"

// Load reads, expands, normalizes, defaults and validates a declaration file.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "resolve configuration path").Build()
	}
	dir := filepath.Dir(absPath)

	for _, f := range loadEnvFiles(dir) {
		slog.Debug("Loaded environment variables", "path", f)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.NotFoundError(fmt.Sprintf("configuration file not found: %s", configPath)).
				WithHint("run `docsite init` to create one").
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "read configuration file").Build()
	}

	cfg, warnings, err := Parse(data)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		slog.Warn("Configuration normalized", "detail", w)
	}
	cfg.configDirectory = dir

	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes declaration file content after expanding ${VAR} references.
// It decodes integration options and runs normalization, but does not apply
// path defaults or validate.
func Parse(data []byte) (*Config, []string, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, nil, ferrors.WrapError(err, ferrors.CategoryConfig, "parse configuration").Build()
	}
	if cfg.Version != CurrentVersion {
		return nil, nil, ferrors.ConfigError(fmt.Sprintf("unsupported configuration version: %q (expected %s)", cfg.Version, CurrentVersion)).WithField("version").Build()
	}

	var warnings []string
	decl, w, err := decodeIntegrations(cfg.Integrations)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, w...)
	cfg.Site = decl

	cfg.ProfileSites = make(map[string]site.Declaration, len(cfg.Profiles))
	for _, name := range sortedProfileNames(cfg.Profiles) {
		entries := make([]Integration, 0, len(cfg.Profiles[name]))
		for _, integ := range sortedIntegrationNames(cfg.Profiles[name]) {
			entries = append(entries, Integration{Name: integ, Options: cfg.Profiles[name][integ]})
		}
		decl, w, err := decodeIntegrations(entries)
		if err != nil {
			return nil, nil, ferrors.WrapError(err, ferrors.CategoryConfig, fmt.Sprintf("profile %q", name)).Build()
		}
		for _, msg := range w {
			warnings = append(warnings, fmt.Sprintf("profile %s: %s", name, msg))
		}
		cfg.ProfileSites[name] = decl
	}

	res, err := NormalizeConfig(&cfg)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, res.Warnings...)
	return &cfg, warnings, nil
}

// decodeIntegrations folds theme and styling options into one declaration.
func decodeIntegrations(entries []Integration) (site.Declaration, []string, error) {
	var decl site.Declaration
	var warnings []string
	seen := map[string]bool{}

	for i, integ := range entries {
		if seen[integ.Name] {
			return decl, nil, ferrors.ConfigError(fmt.Sprintf("integration %q declared more than once", integ.Name)).Build()
		}
		seen[integ.Name] = true

		switch integ.Name {
		case IntegrationStarlight:
			if integ.Options.Kind == 0 {
				continue
			}
			warnings = append(warnings, unknownOptionKeys(&integ.Options, integ.Name, themeOptionKeys)...)
			// The styling flag belongs to the tailwind entry, which may come first.
			applyBaseStyles := decl.ApplyBaseStyles
			if err := integ.Options.Decode(&decl); err != nil {
				return decl, nil, ferrors.WrapError(err, ferrors.CategoryConfig, fmt.Sprintf("decode %s options", integ.Name)).WithField(fmt.Sprintf("integrations[%d].options", i)).Build()
			}
			decl.ApplyBaseStyles = applyBaseStyles
		case IntegrationTailwind:
			if integ.Options.Kind == 0 {
				continue
			}
			warnings = append(warnings, unknownOptionKeys(&integ.Options, integ.Name, stylingOptionKeys)...)
			var opts struct {
				ApplyBaseStyles *bool `yaml:"applyBaseStyles"`
			}
			if err := integ.Options.Decode(&opts); err != nil {
				return decl, nil, ferrors.WrapError(err, ferrors.CategoryConfig, fmt.Sprintf("decode %s options", integ.Name)).WithField(fmt.Sprintf("integrations[%d].options", i)).Build()
			}
			decl.ApplyBaseStyles = opts.ApplyBaseStyles
		default:
			return decl, nil, ferrors.ConfigError(fmt.Sprintf("integrations[%d]: unknown integration %q", i, integ.Name)).
				WithHint(fmt.Sprintf("supported integrations: %s, %s", IntegrationStarlight, IntegrationTailwind)).
				Build()
		}
	}
	return decl, warnings, nil
}

func unknownOptionKeys(node *yaml.Node, integration string, allowed map[string]bool) []string {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	var warnings []string
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !allowed[key] {
			warnings = append(warnings, fmt.Sprintf("%s: ignoring unknown option %q", integration, key))
		}
	}
	return warnings
}

func sortedProfileNames(m map[string]map[string]yaml.Node) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func sortedIntegrationNames(m map[string]yaml.Node) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
