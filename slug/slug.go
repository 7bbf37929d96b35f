// Package slug turns titles into URL path segments for blogs. The API
// stores slugs as given; the admin CLI uses Generate when none is passed.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// invalid matches anything that survives folding but is not allowed in a slug.
	invalid   = regexp.MustCompile(`[^a-z0-9\s-]`)
	separator = regexp.MustCompile(`[\s-]+`)
)

// Generate lowercases s, folds accented letters to ASCII, drops punctuation
// and joins the remaining words with single hyphens.
// Example: "Café Déjà Vu, 2026!" → "cafe-deja-vu-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(fold(s)))
	result = invalid.ReplaceAllString(result, "")
	result = separator.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
