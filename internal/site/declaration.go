package site

import (
	"maps"
	"slices"
)

// Logo references the image rendered in the title area.
type Logo struct {
	Src           string `yaml:"src" json:"src"`
	Alt           string `yaml:"alt,omitempty" json:"alt,omitempty"`
	ReplacesTitle bool   `yaml:"replacesTitle,omitempty" json:"replacesTitle,omitempty"`
}

// Autogenerate asks the theme to build a sidebar group from a content directory.
type Autogenerate struct {
	Directory string `yaml:"directory" json:"directory"`
}

// SidebarEntry is one node of the navigation tree. Exactly one of Items,
// Autogenerate, Slug or Link is set.
type SidebarEntry struct {
	Label        string         `yaml:"label,omitempty" json:"label,omitempty"`
	Slug         string         `yaml:"slug,omitempty" json:"slug,omitempty"`
	Link         string         `yaml:"link,omitempty" json:"link,omitempty"`
	Items        []SidebarEntry `yaml:"items,omitempty" json:"items,omitempty"`
	Autogenerate *Autogenerate  `yaml:"autogenerate,omitempty" json:"autogenerate,omitempty"`
	Collapsed    bool           `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
}

// Declaration is the literal site record as declared in the configuration file.
// Only Title is required.
type Declaration struct {
	Title      string            `yaml:"title"`
	Favicon    string            `yaml:"favicon,omitempty"`
	Logo       *Logo             `yaml:"logo,omitempty"`
	CustomCSS  []string          `yaml:"customCss,omitempty"`
	Social     map[string]string `yaml:"social,omitempty"`
	Components map[string]string `yaml:"components,omitempty"`
	Sidebar    []SidebarEntry    `yaml:"sidebar,omitempty"`

	// ApplyBaseStyles belongs to the styling plugin. Nil means "not declared".
	ApplyBaseStyles *bool `yaml:"applyBaseStyles,omitempty"`
}

// Clone returns a deep copy of d.
func (d Declaration) Clone() Declaration {
	out := d
	if d.Logo != nil {
		logo := *d.Logo
		out.Logo = &logo
	}
	out.CustomCSS = slices.Clone(d.CustomCSS)
	out.Social = maps.Clone(d.Social)
	out.Components = maps.Clone(d.Components)
	out.Sidebar = cloneSidebar(d.Sidebar)
	if d.ApplyBaseStyles != nil {
		v := *d.ApplyBaseStyles
		out.ApplyBaseStyles = &v
	}
	return out
}

func cloneSidebar(entries []SidebarEntry) []SidebarEntry {
	if entries == nil {
		return nil
	}
	out := make([]SidebarEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		out[i].Items = cloneSidebar(e.Items)
		if e.Autogenerate != nil {
			ag := *e.Autogenerate
			out[i].Autogenerate = &ag
		}
	}
	return out
}

// Bool returns a pointer to v, for ApplyBaseStyles literals.
func Bool(v bool) *bool { return &v }
