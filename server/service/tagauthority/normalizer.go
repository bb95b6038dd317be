// Package tagauthority resolves raw creator-typed video tags against the
// curated authority table and computes coverage reports over the corpus.
package tagauthority

import (
	"strings"
	"unicode"
)

// strippedRunes is the punctuation dropped during normalization. Hyphens
// stay because they distinguish compound terms ("sub-zero" vs "subzero").
var strippedRunes = map[rune]struct{}{
	'"': {}, '\'': {}, '`': {},
	'“': {}, '”': {}, '‘': {}, '’': {},
	'.': {}, ',': {}, '!': {}, '?': {},
	'(': {}, ')': {}, '[': {}, ']': {},
	':': {}, ';': {},
}

// Normalize produces the comparison key for a raw tag: lower-cased,
// whitespace trimmed and collapsed, quote-like punctuation stripped.
// Total and deterministic; the empty string maps to the empty string.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	pendingSpace := false
	for _, r := range strings.ToLower(raw) {
		if _, drop := strippedRunes[r]; drop {
			continue
		}
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
