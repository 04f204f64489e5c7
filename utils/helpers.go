package utils

import (
	"strings"
	"unicode"
)

// Digits keeps only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func YesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// JoinOrDash joins items with ", " or returns an em dash placeholder when
// there is nothing to show.
func JoinOrDash(items []string) string {
	if len(items) == 0 {
		return "—"
	}
	return strings.Join(items, ", ")
}

func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
