package categories

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns a display name into a URL-safe slug: accents stripped,
// lowercased, runs of non-alphanumerics collapsed to single dashes.
func Slugify(name string) string {
	flat, _, err := transform.String(deaccent, name)
	if err != nil {
		flat = name
	}

	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(flat) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
