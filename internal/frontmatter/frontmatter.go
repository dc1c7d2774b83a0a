// Package frontmatter reads YAML frontmatter from documentation pages.
package frontmatter

import (
	"bytes"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

const delimiter = "---\n"

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
// CRLF line endings are normalized to LF in both parts.
//
// Without a leading delimiter, had is false and body is the full input. When
// the closing delimiter is missing the error is ErrMissingClosingDelimiter and
// body is still the full input, so callers can fall back to the page text.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(content, []byte(delimiter)) {
		return nil, content, false, nil
	}

	rest := content[len(delimiter):]
	if bytes.HasPrefix(rest, []byte(delimiter)) {
		return []byte{}, rest[len(delimiter):], true, nil
	}

	idx := bytes.Index(rest, []byte("\n"+delimiter))
	if idx < 0 {
		return nil, content, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+1], rest[idx+1+len(delimiter):], true, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// String returns fields[key] trimmed when it is a non-empty string.
func String(fields map[string]any, key string) (string, bool) {
	s, ok := fields[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
