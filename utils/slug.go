package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify: "Le Petit Café!" -> "le-petit-cafe"
func Slugify(s string) string {
	// ตัด accent ออกก่อน (é -> e) chain มี state จึงสร้างใหม่ทุกครั้ง
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if plain, _, err := transform.String(stripMarks, s); err == nil {
		s = plain
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return "menu"
	}
	if len(out) > 100 {
		out = strings.TrimRight(out[:100], "-")
	}
	return out
}
