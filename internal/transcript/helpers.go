package transcript

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func isSentenceTerminatorRune(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// lastNonSpaceRune returns the last rune that is not a whitespace, and true if found.
// Un octet invalide en fin de texte compte comme un caractère (utf8.RuneError).
func lastNonSpaceRune(s string) (rune, bool) {
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		if !unicode.IsSpace(r) {
			return r, true
		}
		s = s[:len(s)-size]
	}
	return 0, false
}

// endsWithTerminator : le texte (trimé) finit par . ! ou ?
// Pas de traitement des guillemets fermants : `He said "stop."` ne compte pas.
func endsWithTerminator(s string) bool {
	r, ok := lastNonSpaceRune(s)
	return ok && isSentenceTerminatorRune(r)
}

// endsWithPeriod : seul "." ferme un paragraphe (voir Regroup).
func endsWithPeriod(s string) bool {
	r, ok := lastNonSpaceRune(s)
	return ok && r == '.'
}

// normalizeWhitespace nettoie les espace : un seul espace entre mots, aucun en début/fin
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// runeLen compte les caractères unicode (et non les octets).
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func wordCount(s string) int {
	return len(strings.FieldsFunc(s, unicode.IsSpace))
}
