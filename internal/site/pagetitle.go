package site

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/docsite/internal/frontmatter"
)

// PageTitle returns the title of a Markdown page: the frontmatter "title"
// field when present, otherwise the text of the first level-one heading.
func PageTitle(content []byte) string {
	fm, body, _, err := frontmatter.Split(content)
	if err == nil && len(fm) > 0 {
		if fields, err := frontmatter.ParseYAML(fm); err == nil {
			if title, ok := frontmatter.String(fields, "title"); ok {
				return title
			}
		}
	}
	return firstHeading(body)
}

func firstHeading(body []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok || h.Level != 1 {
			return gmast.WalkContinue, nil
		}
		title = strings.TrimSpace(inlineText(h, body))
		return gmast.WalkStop, nil
	})
	return title
}

func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}
