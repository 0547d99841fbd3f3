// Package render converts raw message text into display-safe HTML fragments.
//
// All text is HTML-escaped before anything else, so markup in user or
// assistant content is shown verbatim rather than interpreted. Only
// assistant messages receive rich formatting: whitespace-delimited
// http(s) URLs become links that open in a separate browsing context
// without a reference back to this page, and newlines become <br> tags.
package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// linkPattern matches whitespace-delimited http(s) tokens. It runs against
// already-escaped text, so the matched span contains entities, never raw
// markup; the browser restores them when reading the href attribute.
var linkPattern = regexp.MustCompile(`https?://\S+`)

// User renders a user message. Escaping only; user text is never
// auto-linked or line-break-converted.
func User(content string) string {
	return html.EscapeString(content)
}

// Assistant renders an assistant message: escape, auto-link, then convert
// line breaks.
func Assistant(content string) string {
	escaped := html.EscapeString(content)
	linked := linkPattern.ReplaceAllStringFunc(escaped, func(url string) string {
		return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, url, url)
	})
	return strings.ReplaceAll(linked, "\n", "<br>")
}
