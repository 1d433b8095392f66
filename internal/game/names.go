package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

const validNameChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// ValidName reports whether s is non-empty and made only of letters, digits,
// underscores and hyphens. Player names and flag names share this rule.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(validNameChars, r) {
			return false
		}
	}
	return true
}

// Key returns the canonical, case-folded form of a name. Every lookup or
// insertion keyed by a player, flag or direction name goes through Key.
func Key(s string) string {
	return cases.Fold().String(s)
}

// Capitalize returns the display form of a player name. The first character
// and every character after one that is not a letter or digit are upper
// case; the rest are lower case.
func Capitalize(s string) string {
	upper := true
	return strings.Map(func(r rune) rune {
		out := unicode.ToLower(r)
		if upper {
			out = unicode.ToUpper(r)
		}
		upper = !unicode.IsLetter(r) && !unicode.IsDigit(r)
		return out
	}, s)
}

// EqualName compares two names ignoring case.
func EqualName(a, b string) bool {
	return Key(a) == Key(b)
}
