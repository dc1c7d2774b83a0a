package site

import (
	"maps"
	"slices"
	"sort"
	"strings"
)

// TitleSource names what renders the header title area.
type TitleSource string

const (
	TitleFromText      TitleSource = "text"
	TitleFromLogo      TitleSource = "logo"
	TitleFromComponent TitleSource = "component"
)

// Config is a validated, read-only site configuration. All accessors return
// copies; a Config never changes after Build returns it.
type Config struct {
	decl Declaration
}

// Build validates decl and returns the immutable configuration.
//
// Checks run in a fixed order so the same input always yields the same error:
// title, logo src, title render source, component slots, social links, sidebar.
// Build performs no I/O; see Resolve for asset checks.
func Build(decl Declaration) (*Config, error) {
	if strings.TrimSpace(decl.Title) == "" {
		return nil, missingTitleError()
	}
	if decl.Logo != nil {
		if strings.TrimSpace(decl.Logo.Src) == "" {
			return nil, emptyLogoError()
		}
		if comp := decl.Components[SlotSiteTitle]; comp != "" {
			return nil, conflictingTitleRenderError(decl.Logo.Src, comp)
		}
	}
	for _, slot := range sortedKeys(decl.Components) {
		if !IsKnownSlot(slot) {
			return nil, unknownSlotError(slot)
		}
	}
	if err := validateSocial(decl.Social); err != nil {
		return nil, err
	}
	if err := validateSidebar(decl.Sidebar, "sidebar"); err != nil {
		return nil, err
	}
	return &Config{decl: decl.Clone()}, nil
}

// Declaration returns a copy of the declared fields.
func (c *Config) Declaration() Declaration { return c.decl.Clone() }

// Title returns the site title.
func (c *Config) Title() string { return c.decl.Title }

// Favicon returns the favicon path, empty when not declared.
func (c *Config) Favicon() string { return c.decl.Favicon }

// Logo returns the declared logo, if any.
func (c *Config) Logo() (Logo, bool) {
	if c.decl.Logo == nil {
		return Logo{}, false
	}
	return *c.decl.Logo, true
}

// CustomCSS returns a copy of the stylesheet paths in declaration order.
func (c *Config) CustomCSS() []string { return slices.Clone(c.decl.CustomCSS) }

// Social returns a copy of the platform to URI map.
func (c *Config) Social() map[string]string { return maps.Clone(c.decl.Social) }

// Components returns a copy of the slot to component path map.
func (c *Config) Components() map[string]string { return maps.Clone(c.decl.Components) }

// Sidebar returns a deep copy of the sidebar tree.
func (c *Config) Sidebar() []SidebarEntry { return cloneSidebar(c.decl.Sidebar) }

// BaseStylesEnabled reports the styling plugin flag; undeclared means enabled.
func (c *Config) BaseStylesEnabled() bool {
	if c.decl.ApplyBaseStyles == nil {
		return true
	}
	return *c.decl.ApplyBaseStyles
}

// TitleSource reports which single source renders the title area.
func (c *Config) TitleSource() TitleSource {
	switch {
	case c.decl.Logo != nil:
		return TitleFromLogo
	case c.decl.Components[SlotSiteTitle] != "":
		return TitleFromComponent
	default:
		return TitleFromText
	}
}

// AssetPaths lists every local path the configuration references, in
// declaration order: favicon, logo, custom CSS, then components by slot name.
func (c *Config) AssetPaths() []string {
	var paths []string
	if c.decl.Favicon != "" {
		paths = append(paths, c.decl.Favicon)
	}
	if c.decl.Logo != nil && c.decl.Logo.Src != "" {
		paths = append(paths, c.decl.Logo.Src)
	}
	paths = append(paths, c.decl.CustomCSS...)
	for _, slot := range sortedKeys(c.decl.Components) {
		if p := c.decl.Components[slot]; p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
