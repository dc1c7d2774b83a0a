package site

import (
	"maps"
	"strings"
)

// Merge layers overlay over base and returns a new declaration. Set fields of
// overlay win; social links and component overrides merge per key, and an
// empty overlay value removes the key from the result. An overlay logo with
// an empty src removes the base logo. The result is not validated: merging a
// logo into a declaration with a SiteTitle override is allowed here and
// rejected by Build.
func Merge(base, overlay Declaration) Declaration {
	out := base.Clone()
	ov := overlay.Clone()

	if ov.Title != "" {
		out.Title = ov.Title
	}
	if ov.Favicon != "" {
		out.Favicon = ov.Favicon
	}
	if ov.Logo != nil {
		if strings.TrimSpace(ov.Logo.Src) == "" {
			out.Logo = nil
		} else {
			out.Logo = ov.Logo
		}
	}
	if len(ov.CustomCSS) > 0 {
		out.CustomCSS = ov.CustomCSS
	}
	out.Social = mergeStringMaps(out.Social, ov.Social)
	out.Components = mergeStringMaps(out.Components, ov.Components)
	if ov.Sidebar != nil {
		out.Sidebar = ov.Sidebar
	}
	if ov.ApplyBaseStyles != nil {
		out.ApplyBaseStyles = ov.ApplyBaseStyles
	}
	return out
}

func mergeStringMaps(base, overlay map[string]string) map[string]string {
	if len(overlay) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(overlay))
	}
	maps.Copy(base, overlay)
	maps.DeleteFunc(base, func(_, v string) bool { return v == "" })
	return base
}
