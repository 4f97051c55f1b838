// Package dart extracts income-statement tables from DART filing markup.
package dart

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRE = regexp.MustCompile(`\s+`)
	tagRE   = regexp.MustCompile(`(?s)<[^>]*>`)
)

// NormalizeText canonicalizes raw filing text: character entities are decoded,
// non-breaking and ideographic spaces become ordinary spaces, NFKC folds
// full-width forms to their standard equivalents, and whitespace runs collapse
// to a single space. Total over any input; empty in, empty out.
func NormalizeText(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "　", " ")
	s = norm.NFKC.String(s)
	s = spaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripTags removes markup from a fragment but keeps its visible text.
func StripTags(fragment string) string {
	return NormalizeText(tagRE.ReplaceAllString(fragment, " "))
}
