package emit

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/site"
	"gopkg.in/yaml.v3"
)

// HugoEmitter writes hugo.yaml for the hextra documentation theme.
type HugoEmitter struct{}

const hextraModule = "github.com/imfing/hextra"

func (HugoEmitter) Target() string   { return "hugo" }
func (HugoEmitter) FileName() string { return "hugo.yaml" }

// Command returns `hugo --minify`, passing the destination when set.
func (HugoEmitter) Command(opts Options) []string {
	cmd := []string{"hugo", "--minify"}
	if opts.OutputDir != "" {
		cmd = append(cmd, "--destination", opts.OutputDir)
	}
	return cmd
}

// socialIcons maps social platform names onto hextra icon names.
var socialIcons = map[string]string{
	"email":    "mail",
	"github":   "github",
	"gitlab":   "gitlab",
	"mastodon": "mastodon",
	"discord":  "discord",
	"x.com":    "x-twitter",
	"linkedin": "linkedin",
}

// Render writes hugo.yaml importing the hextra theme module.
func (HugoEmitter) Render(cfg *site.Config, _ Options) ([]byte, error) {
	// Phase 1: core settings
	params := map[string]any{}
	root := map[string]any{
		"title":        cfg.Title(),
		"languageCode": "en",
		"module":       map[string]any{"imports": []map[string]any{{"path": hextraModule}}},
		"params":       params,
	}

	// Phase 2: title area, from exactly one source
	navbar := map[string]any{"displayTitle": true, "displayLogo": false}
	if logo, ok := cfg.Logo(); ok {
		navbar["displayLogo"] = true
		navbar["displayTitle"] = !logo.ReplacesTitle
		navbar["logo"] = map[string]any{"path": strings.TrimPrefix(logo.Src, "./")}
	}
	params["navbar"] = navbar

	if fav := cfg.Favicon(); fav != "" {
		params["favicon"] = fav
	}
	if css := cfg.CustomCSS(); len(css) > 0 {
		params["customCss"] = css
	}
	if comps := cfg.Components(); len(comps) > 0 {
		params["components"] = comps
	}
	params["docsite"] = map[string]any{
		"titleSource":     string(cfg.TitleSource()),
		"applyBaseStyles": cfg.BaseStylesEnabled(),
	}

	// Phase 3: menus
	menu := map[string]any{"main": mainMenu(cfg.Social())}
	if sidebar := sidebarMenu(cfg.Sidebar()); len(sidebar) > 0 {
		menu["sidebar"] = sidebar
	}
	root["menu"] = menu

	return yaml.Marshal(root)
}

func mainMenu(social map[string]string) []map[string]any {
	entries := []map[string]any{
		{"name": "Search", "weight": 1, "params": map[string]any{"type": "search"}},
		{"name": "Theme", "weight": 98, "params": map[string]any{"type": "theme-toggle", "label": false}},
	}
	platforms := make([]string, 0, len(social))
	for p := range social {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	for i, p := range platforms {
		entry := map[string]any{"name": p, "weight": 99 + i, "url": social[p]}
		if icon, ok := socialIcons[p]; ok {
			entry["params"] = map[string]any{"icon": icon}
		}
		entries = append(entries, entry)
	}
	return entries
}

// sidebarMenu flattens the sidebar tree into Hugo menu entries with parents.
// Autogenerated groups have no Hugo equivalent and become plain section links.
func sidebarMenu(entries []site.SidebarEntry) []map[string]any {
	var out []map[string]any
	var walk func(items []site.SidebarEntry, parent string)
	weight := 0
	walk = func(items []site.SidebarEntry, parent string) {
		for _, e := range items {
			weight++
			entry := map[string]any{"name": e.Label, "weight": weight}
			if parent != "" {
				entry["parent"] = parent
			}
			switch {
			case e.Link != "":
				entry["url"] = e.Link
			case e.Slug != "":
				entry["pageRef"] = "/" + strings.Trim(e.Slug, "/")
			case e.Autogenerate != nil:
				entry["pageRef"] = "/" + strings.Trim(e.Autogenerate.Directory, "/")
			default:
				entry["identifier"] = identifier(parent, e.Label)
			}
			out = append(out, entry)
			if e.Items != nil {
				walk(e.Items, identifier(parent, e.Label))
			}
		}
	}
	walk(entries, "")
	return out
}

func identifier(parent, label string) string {
	id := strings.ToLower(strings.Join(strings.Fields(label), "-"))
	if parent == "" {
		return id
	}
	return parent + "/" + id
}

func init() { Register(HugoEmitter{}) }
