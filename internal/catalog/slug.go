package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Eszett has no combining-mark decomposition, so NFD leaves it alone.
var foldSharpS = strings.NewReplacer("ß", "ss", "ẞ", "SS")

// Slugify turns a display name into a URL slug: accents stripped, lowered,
// runs of non-alphanumerics collapsed to a single hyphen.
func Slugify(name string) string {
	flat, _, err := transform.String(deaccent, foldSharpS.Replace(name))
	if err != nil {
		flat = name
	}

	var b strings.Builder
	b.Grow(len(flat))
	pendingHyphen := false
	for _, r := range strings.ToLower(flat) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}
