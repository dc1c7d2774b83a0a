package site

// PluginKind classifies an integration handed to the generator.
type PluginKind string

const (
	PluginCore    PluginKind = "core"
	PluginTheme   PluginKind = "theme"
	PluginStyling PluginKind = "styling"
)

// Plugin names for the integrations docsite knows how to configure.
const (
	PluginNameCore      = "core"
	PluginNameStarlight = "starlight"
	PluginNameTailwind  = "tailwind"
)

// Plugin is one activated integration with its option object.
type Plugin struct {
	Name    string
	Kind    PluginKind
	Options map[string]any
}

// Plugins returns the ordered activation list: generator core, documentation
// theme, utility styling.
func (c *Config) Plugins() []Plugin {
	return []Plugin{
		{Name: PluginNameCore, Kind: PluginCore, Options: map[string]any{}},
		{Name: PluginNameStarlight, Kind: PluginTheme, Options: c.themeOptions()},
		{Name: PluginNameTailwind, Kind: PluginStyling, Options: map[string]any{"applyBaseStyles": c.BaseStylesEnabled()}},
	}
}

func (c *Config) themeOptions() map[string]any {
	opts := map[string]any{"title": c.decl.Title}
	if c.decl.Favicon != "" {
		opts["favicon"] = c.decl.Favicon
	}
	if logo, ok := c.Logo(); ok {
		opts["logo"] = logo
	}
	if len(c.decl.CustomCSS) > 0 {
		opts["customCss"] = c.CustomCSS()
	}
	if len(c.decl.Social) > 0 {
		opts["social"] = c.Social()
	}
	if len(c.decl.Components) > 0 {
		opts["components"] = c.Components()
	}
	if len(c.decl.Sidebar) > 0 {
		opts["sidebar"] = c.Sidebar()
	}
	return opts
}
