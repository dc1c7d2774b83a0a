package config

import (
	"fmt"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// ProfileNames returns the declared profile names, sorted.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.ProfileSites))
	for name := range c.ProfileSites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Declaration returns the site declaration for profile. An empty profile
// selects the base integrations; otherwise the profile is merged over them.
func (c *Config) Declaration(profile string) (site.Declaration, error) {
	if profile == "" {
		return c.Site.Clone(), nil
	}
	overlay, ok := c.ProfileSites[profile]
	if !ok {
		known := c.ProfileNames()
		hint := "no profiles are declared"
		if len(known) > 0 {
			hint = "declared profiles: " + strings.Join(known, ", ")
		}
		return site.Declaration{}, ferrors.NotFoundError(fmt.Sprintf("unknown profile %q", profile)).
			WithContext("profile", profile).
			WithHint(hint).
			Build()
	}
	return site.Merge(c.Site, overlay), nil
}

// Resolver returns an asset resolver for the configured project layout.
func (c *Config) Resolver() *site.Resolver {
	return &site.Resolver{
		Root:       c.Project.Root,
		PublicDir:  c.Project.PublicDir,
		ContentDir: c.Project.ContentDir,
	}
}
