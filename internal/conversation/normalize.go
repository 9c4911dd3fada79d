package conversation

import (
	"strings"
	"unicode"
)

// Normalize returns the canonical form of text used for comparing a learner's
// reply against the expected phrase: lower-cased, punctuation removed, leading
// and trailing whitespace trimmed and internal whitespace runs collapsed to a
// single space. Punctuation is any Unicode punctuation rune, which covers the
// ASCII set .,!?;:"' as well as ¿ ¡ « » “ ” ‘ ’ … and similar.
//
// Normalize is total and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case unicode.IsPunct(r):
			// dropped without breaking the surrounding word
		default:
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}

// Matches reports whether reply reproduces expected, ignoring case,
// punctuation and whitespace differences. It is exact equality of the
// canonical forms, not a fuzzy comparison.
func Matches(reply, expected string) bool {
	return Normalize(reply) == Normalize(expected)
}
