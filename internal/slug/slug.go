// Package slug derives URL-safe destination identifiers from free-text locations.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var dashRun = regexp.MustCompile(`-{2,}`)

// Make canonicalizes text into a lowercase, hyphenated identifier.
//
// The text is NFKD-normalized, everything except ASCII word characters,
// whitespace and hyphens is dropped, whitespace runs become a single
// hyphen and repeated hyphens collapse. Make returns "" when nothing
// survives; callers pick their own fallback (see Key).
//
//	Make("Kozhikode")       // "kozhikode"
//	Make("KOZHIKODE!")      // "kozhikode"
//	Make("São  Paulo")      // "sao-paulo"
//	Make("Hà Nội -- Old")   // "ha-noi-old"
func Make(text string) string {
	decomposed := norm.NFKD.String(text)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if isWord(r) || r == '-' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	joined := strings.Join(strings.Fields(b.String()), "-")
	return strings.ToLower(dashRun.ReplaceAllString(joined, "-"))
}

// Key returns Make(location), or fallback when the location has no usable characters.
func Key(location, fallback string) string {
	if s := Make(location); s != "" {
		return s
	}
	return fallback
}

func isWord(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
