// Package htmlsanitize strips dangerous HTML from user-supplied content
// before it is stored or rendered.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// ugc allows the formatting tags a rich-text notification may carry
// (paragraphs, emphasis, links) while removing scripts and event handlers.
var ugc = bluemonday.UGCPolicy()

// strict strips all markup, leaving plain text.
var strict = bluemonday.StrictPolicy()

// Sanitize cleans HTML content, keeping safe user-generated markup.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// PlainText removes all HTML, returning only the text content.
// Used for fields that must never contain markup (names, logins).
func PlainText(s string) string {
	return strict.Sanitize(s)
}
