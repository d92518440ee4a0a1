package clue

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/xword-parse/internal/domain"
)

var (
	// "(8)", "(4,5)", "(3-4)", "(2, 3; 4)" at the very end of the clue.
	lengthHintRe = regexp.MustCompile(`\(\s*\d[\d\s,;.\-]*\)\s*$`)
	subclueSepRe = regexp.MustCompile(`\s+-\s+`)

	anagramRe   = regexp.MustCompile(`(?i)^(.*)\(\s*anag\.?\s*\)$`)
	referenceRe = regexp.MustCompile(`(?i)^see\s+(?:\d+|and|across|down)(?:(?:\s*,\s*|\s+)(?:\d+|and|across|down))*,?$`)

	whitespaceRe = regexp.MustCompile(`\s+`)
	lifeDatesRe  = regexp.MustCompile(`\([bd]\.?\s*\d+\)`)
	yearRangeRe  = regexp.MustCompile(`\(\d+\s*[-–]\s*\d+\)`)
	bracketsRe   = regexp.MustCompile(`\(([^)]*)\)`)
	unwantedRe   = regexp.MustCompile(`[^a-z'\- ]+`)
	hyphenRunRe  = regexp.MustCompile(`-{2,}`)
)

// StripLengthHint removes a trailing length indicator and surrounding
// whitespace: "Moon shape (8)" becomes "Moon shape".
func StripLengthHint(text string) string {
	return strings.TrimSpace(lengthHintRe.ReplaceAllString(strings.TrimSpace(text), ""))
}

// Split strips the length hint and splits the clue into subclues.
func Split(text string) []string {
	text = StripLengthHint(text)
	if text == "" {
		return []string{""}
	}
	return subclueSepRe.Split(text, -1)
}

// Classify returns one classification per subclue, in clue order.
func Classify(text string) []Classification {
	subclues := Split(text)
	out := make([]Classification, len(subclues))
	for i, s := range subclues {
		out[i] = ClassifySubclue(s)
	}
	return out
}

// ClassifySubclue classifies a single subclue. Patterns are tried in order:
// anagram marker, cross-reference grammar, then synonyms if there are any
// letters at all.
func ClassifySubclue(text string) Classification {
	text = strings.TrimSpace(text)

	if m := anagramRe.FindStringSubmatch(text); m != nil {
		if key := domain.LettersOnly(m[1]); key != "" {
			return Anagram{Key: key}
		}
		return Unknown{Text: text}
	}
	if referenceRe.MatchString(text) {
		return Reference{}
	}
	if domain.HasLetters(text) {
		if tokens := SynonymTokens(text); len(tokens) > 0 {
			return Synonym{Tokens: tokens}
		}
	}
	return Unknown{Text: text}
}

// SynonymTokens normalizes a definition subclue into tokens. Birth, death
// and year-range annotations are dropped, other brackets are unwrapped, and
// hyphenated words are joined with domain.JoinMarker. Empty tokens are
// dropped.
func SynonymTokens(text string) []string {
	text = whitespaceRe.ReplaceAllString(domain.FoldText(text), " ")
	text = lifeDatesRe.ReplaceAllString(text, " ")
	text = yearRangeRe.ReplaceAllString(text, " ")
	text = bracketsRe.ReplaceAllString(text, "$1")
	text = unwantedRe.ReplaceAllString(text, "")
	text = hyphenRunRe.ReplaceAllString(text, " ")

	var tokens []string
	for _, field := range strings.Fields(text) {
		if token := cleanToken(field); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func cleanToken(token string) string {
	token = strings.Trim(token, "-")
	token = strings.TrimSuffix(token, "'s")
	token = strings.Trim(token, "'-")
	return strings.ReplaceAll(token, "-", string(domain.JoinMarker))
}
