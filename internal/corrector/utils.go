package corrector

import (
	"strings"
	"unicode"
)

// projectCase copies the original token's case pattern onto word, rune by
// rune. Positions beyond the original's length take the case of its last
// rune. word is expected lowercased.
func projectCase(word, orig string) string {
	ow := []rune(orig)
	if len(ow) == 0 {
		return word
	}
	var b strings.Builder
	b.Grow(len(word))
	for k, r := range []rune(word) {
		n := k
		if n >= len(ow) {
			n = len(ow) - 1
		}
		if unicode.IsUpper(ow[n]) {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
