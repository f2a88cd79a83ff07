package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds text to lowercase ASCII letters, digits and single spaces.
// Diacritics are dropped ("Développeur" -> "developpeur"), every other rune
// becomes a separator.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)

	// transform.Chain keeps internal state, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lower)
	if err != nil {
		folded = lower
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
