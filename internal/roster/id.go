package roster

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug turns a display name into an id fragment: lower case, accents stripped,
// runs of anything but letters and digits collapsed to a single dash.
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = cases.Lower(language.Und).String(folded)

	var b strings.Builder
	dash := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// newID derives an id from the name, falling back to a random suffix when the
// slug is empty or already taken.
func newID(name string, taken func(string) bool) string {
	base := Slug(name)
	if base != "" && !taken(base) {
		return base
	}
	for {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		id := suffix
		if base != "" {
			id = base + "-" + suffix
		}
		if !taken(id) {
			return id
		}
	}
}
