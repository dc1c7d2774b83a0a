package site

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SlotSiteTitle is the component slot that renders the header title area.
const SlotSiteTitle = "SiteTitle"

// knownSlots lists the overridable UI fragments of the documentation theme.
var knownSlots = []string{
	"Head", "ThemeProvider", "SkipLink", "PageFrame", "MobileMenuToggle",
	"TwoColumnContent", "Header", "SiteTitle", "Search", "SocialIcons",
	"ThemeSelect", "LanguageSelect", "Sidebar", "MobileMenuFooter",
	"PageSidebar", "TableOfContents", "MobileTableOfContents", "Banner",
	"ContentPanel", "PageTitle", "DraftContentNotice", "FallbackContentNotice",
	"Hero", "MarkdownContent", "Footer", "LastUpdated", "Pagination", "EditLink",
}

var slotTitler = cases.Title(language.Und)

// KnownSlots returns the theme's overridable component slot names.
func KnownSlots() []string {
	return slices.Clone(knownSlots)
}

// IsKnownSlot reports whether name is exactly a theme slot name.
func IsKnownSlot(name string) bool {
	return slices.Contains(knownSlots, name)
}

// CanonicalSlot maps spellings like "site-title", "site_title" or "sitetitle"
// to the theme's PascalCase slot name. ok is false for unknown slots.
func CanonicalSlot(name string) (string, bool) {
	parts := strings.FieldsFunc(strings.TrimSpace(name), func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	if len(parts) == 0 {
		return "", false
	}
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(slotTitler.String(p))
	}
	joined := b.String()
	for _, slot := range knownSlots {
		if strings.EqualFold(slot, joined) {
			return slot, true
		}
	}
	return "", false
}
