package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reBrackets = regexp.MustCompile(`[\[\]]`)
	reSpaces   = regexp.MustCompile(`\s+`)

	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// NormalizeColumnName flattens a header token for loose matching: combining
// marks stripped, brackets removed, slashes and whitespace runs replaced with
// underscores, lower-cased. "[Fe/H]" -> "fe_h".
func NormalizeColumnName(name string) string {
	s := strings.TrimSpace(name)
	if flat, _, err := transform.String(stripMarks, s); err == nil {
		s = flat
	}
	s = reBrackets.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "/", "_")
	s = reSpaces.ReplaceAllString(s, "_")
	return strings.ToLower(s)
}

// NormalizeSpaces collapses internal whitespace runs and trims the ends.
func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// HasLetter reports whether any rune in s is alphabetic.
func HasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
