package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
	"golang.org/x/text/unicode/norm"
)

// NormalizationResult captures adjustments & warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerations and site declarations in place.
// Unknown component slots are left untouched so site.Build can reject them.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}

	if c.Project.Target != "" {
		r, err := targetNormalizer.NormalizeField("project.target", string(c.Project.Target))
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "normalize project.target").WithField("project.target").Build()
		}
		if r.Value != c.Project.Target && r.Warning == "" {
			res.Warnings = append(res.Warnings, warnChanged("project.target", c.Project.Target, r.Value))
		} else if r.Warning != "" {
			res.Warnings = append(res.Warnings, r.Warning)
		}
		c.Project.Target = r.Value
	}

	normalizeLogging(&c.Logging, res)

	if err := normalizeDeclaration("site", &c.Site, res); err != nil {
		return nil, err
	}
	for _, name := range slices.Sorted(maps.Keys(c.ProfileSites)) {
		decl := c.ProfileSites[name]
		if err := normalizeDeclaration("profiles."+name, &decl, res); err != nil {
			return nil, err
		}
		c.ProfileSites[name] = decl
	}
	return res, nil
}

func normalizeLogging(l *LoggingConfig, res *NormalizationResult) {
	if l.Level != "" {
		if lvl := NormalizeLogLevel(string(l.Level)); lvl != l.Level {
			res.Warnings = append(res.Warnings, warnChanged("logging.level", l.Level, lvl))
			l.Level = lvl
		}
	}
	if l.Format != "" {
		if f := NormalizeLogFormat(string(l.Format)); f != l.Format {
			res.Warnings = append(res.Warnings, warnChanged("logging.format", l.Format, f))
			l.Format = f
		}
	}
}

// normalizeDeclaration canonicalizes slot and platform names. Two spellings
// of the same key are rejected rather than silently collapsed.
func normalizeDeclaration(scope string, d *site.Declaration, res *NormalizationResult) error {
	if d.Title != "" {
		d.Title = norm.NFC.String(strings.TrimSpace(d.Title))
	}

	if len(d.Components) > 0 {
		canonical := make(map[string]string, len(d.Components))
		spelledAs := make(map[string]string, len(d.Components))
		for _, slot := range slices.Sorted(maps.Keys(d.Components)) {
			name, ok := site.CanonicalSlot(slot)
			if !ok {
				name = slot
			}
			if prev, dup := spelledAs[name]; dup {
				return duplicateKeyError(scope+".components", prev, slot)
			}
			if name != slot {
				res.Warnings = append(res.Warnings, warnChanged(scope+".components", slot, name))
			}
			spelledAs[name] = slot
			canonical[name] = d.Components[slot]
		}
		d.Components = canonical
	}

	if len(d.Social) > 0 {
		lowered := make(map[string]string, len(d.Social))
		spelledAs := make(map[string]string, len(d.Social))
		for _, platform := range slices.Sorted(maps.Keys(d.Social)) {
			key := strings.ToLower(strings.TrimSpace(platform))
			if prev, dup := spelledAs[key]; dup {
				return duplicateKeyError(scope+".social", prev, platform)
			}
			if key != platform {
				res.Warnings = append(res.Warnings, warnChanged(scope+".social", platform, key))
			}
			spelledAs[key] = platform
			lowered[key] = strings.TrimSpace(d.Social[platform])
		}
		d.Social = lowered
	}
	return nil
}

func duplicateKeyError(field, first, second string) error {
	return ferrors.ConfigError(fmt.Sprintf("%q and %q name the same key", first, second)).
		WithField(field).
		WithHint("keep one spelling").
		Build()
}

func warnChanged[T ~string](field string, from, to T) string {
	return fmt.Sprintf("normalized %s from '%s' to '%s'", field, from, to)
}
