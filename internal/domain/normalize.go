package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// JoinMarker joins the words of a multiword answer or synonym token
// ("full_of_beans", "mother_in_law").
const JoinMarker = '_'

// FoldText lowercases text and strips diacritics, so that "Café" and "cafe"
// compare equal. Curly apostrophes are folded to a plain apostrophe.
// Characters outside the Latin alphabet are kept as they are.
func FoldText(text string) string {
	if text == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	folded = strings.NewReplacer("’", "'", "‘", "'").Replace(folded)
	return strings.ToLower(folded)
}

// LettersOnly folds text and drops every character that is not an ASCII
// letter: "Full of beans!" becomes "fullofbeans".
func LettersOnly(text string) string {
	text = FoldText(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasLetters reports whether text contains at least one letter in any script.
func HasLetters(text string) bool {
	return strings.IndexFunc(text, unicode.IsLetter) >= 0
}
