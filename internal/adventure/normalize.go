package adventure

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims surrounding whitespace and lowercases the input.
// Input is NFC-composed first so that visually identical commands compare equal.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	// Casers are stateful and must not be shared between goroutines.
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}
