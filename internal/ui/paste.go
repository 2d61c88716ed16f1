package ui

import (
	"net/url"
	"strings"
)

// ParseDroppedPaths extracts file paths from text a terminal pastes when files
// are dragged onto it. Terminals differ: some quote paths, some escape spaces
// with backslashes, some send file:// URIs, one per line or space separated.
func ParseDroppedPaths(text string) []string {
	var paths []string
	var current strings.Builder
	var quote rune
	escaped := false

	flush := func() {
		if current.Len() == 0 {
			return
		}
		paths = append(paths, normalizeDropped(current.String()))
		current.Reset()
	}

	for _, r := range strings.TrimSpace(text) {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return paths
}

// normalizeDropped turns a file:// URI into a local path
func normalizeDropped(token string) string {
	if !strings.HasPrefix(token, "file://") {
		return token
	}
	u, err := url.Parse(token)
	if err != nil {
		return strings.TrimPrefix(token, "file://")
	}
	return u.Path
}
