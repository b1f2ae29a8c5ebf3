package utils

import (
	"strings"
	"unicode"
)

// Slugify normalizes a string into a lowercase hyphen-separated slug. The
// generator is asked for a slug-safe course id but the output is normalized
// anyway before the uniqueness check.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
