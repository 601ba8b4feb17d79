package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize strips accents and lower-cases, so "Reunião" becomes "reuniao".
func Normalize(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	stripped, _, err := transform.String(t, value)
	if err != nil {
		stripped = value
	}

	return strings.ToLower(strings.TrimSpace(stripped))
}

// Matches reports whether term is contained in text after normalization.
func Matches(text string, term string) bool {
	return strings.Contains(Normalize(text), Normalize(term))
}
