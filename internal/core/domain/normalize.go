package domain

import (
	"strings"
	"unicode"
)

// Normalize collapses every whitespace run to a single space and trims the
// result. Normalized text never contains consecutive whitespace characters;
// normalizing already-normalized text is a no-op.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CountUsableChars counts non-whitespace runes. The extraction chain and the
// presentation layer both gate on this, not on raw byte length.
func CountUsableChars(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
