// internal/app/system/sanitize/sanitize.go

// Package sanitize strips markup from user-supplied text before it is
// stored. Recipe names, descriptions, and steps are rendered by third
// party clients we don't control, so nothing but plain text goes in.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from s. The policy entity-escapes what it
// keeps, so the result is unescaped back to plain text, then trimmed
// because stripped tags can leave stray edge whitespace.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
