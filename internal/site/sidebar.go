package site

import "fmt"

func validateSidebar(entries []SidebarEntry, at string) error {
	for i, e := range entries {
		where := fmt.Sprintf("%s[%d]", at, i)

		kinds := 0
		if e.Items != nil {
			kinds++
		}
		if e.Autogenerate != nil {
			kinds++
		}
		if e.Slug != "" {
			kinds++
		}
		if e.Link != "" {
			kinds++
		}
		if kinds != 1 {
			return invalidSidebarError(where, "exactly one of items, autogenerate, slug or link must be set")
		}

		// Slug entries may take their label from the page title.
		if e.Label == "" && e.Slug == "" {
			return invalidSidebarError(where, "label is required")
		}
		if e.Autogenerate != nil && e.Autogenerate.Directory == "" {
			return invalidSidebarError(where, "autogenerate.directory is required")
		}
		if e.Items != nil {
			if err := validateSidebar(e.Items, where+".items"); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkSidebar calls fn for every entry, depth first. fn may modify the entry.
func walkSidebar(entries []SidebarEntry, fn func(e *SidebarEntry) error) error {
	for i := range entries {
		if err := fn(&entries[i]); err != nil {
			return err
		}
		if err := walkSidebar(entries[i].Items, fn); err != nil {
			return err
		}
	}
	return nil
}
