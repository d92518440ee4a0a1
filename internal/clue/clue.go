// Package clue classifies free-text crossword clues.
//
// A clue is split into subclues on " - " and each subclue is classified as a
// synonym list, an anagram key, a cross-reference ("See 8 across") or
// unknown. Pure functions only: text in, classifications out.
package clue

import "fmt"

// Category is the kind of a classified subclue.
type Category int

const (
	CategoryUnknown Category = iota
	CategorySynonym
	CategoryAnagram
	CategoryReference
)

func (c Category) String() string {
	switch c {
	case CategorySynonym:
		return "synonym"
	case CategoryAnagram:
		return "anagram"
	case CategoryReference:
		return "reference"
	default:
		return "unknown"
	}
}

type sealed interface{ isClassification() }

// Classification is one classified subclue. The concrete type is always one
// of Synonym, Anagram, Reference or Unknown.
type Classification interface {
	sealed
	Category() Category
}

// Synonym holds the normalized tokens of a definition subclue.
type Synonym struct {
	Tokens []string
}

// Anagram holds the letters a candidate answer must be a rearrangement of.
type Anagram struct {
	Key string
}

// Reference marks a subclue that only points at another entry.
type Reference struct{}

// Unknown is a subclue with nothing usable in it. Text is kept for
// diagnostics.
type Unknown struct {
	Text string
}

func (Synonym) isClassification()   {}
func (Anagram) isClassification()   {}
func (Reference) isClassification() {}
func (Unknown) isClassification()   {}

func (Synonym) Category() Category   { return CategorySynonym }
func (Anagram) Category() Category   { return CategoryAnagram }
func (Reference) Category() Category { return CategoryReference }
func (Unknown) Category() Category   { return CategoryUnknown }

// Result aggregates the classifications of one clue the way an entry
// consumes them.
type Result struct {
	Subclues []Classification

	// Synonyms has one token group per synonym subclue, nil if there were none
	// or the clue is a cross-reference.
	Synonyms [][]string
	// Anagram is the first anagram key of the clue, if any.
	Anagram *string
	// Reference is true when any subclue is a cross-reference. Such a clue
	// contributes no synonyms and no anagram.
	Reference bool

	Diagnostics []string
}

// Parse classifies text and aggregates the result.
func Parse(text string) Result {
	subclues := Classify(text)
	res := Result{Subclues: subclues}

	var unknown bool
	for _, c := range subclues {
		switch c := c.(type) {
		case Synonym:
			res.Synonyms = append(res.Synonyms, c.Tokens)
		case Anagram:
			if res.Anagram != nil {
				res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("Multiple anagrams in one clue (%q)", text))
				continue
			}
			key := c.Key
			res.Anagram = &key
		case Reference:
			res.Reference = true
		case Unknown:
			unknown = true
		}
	}

	if unknown {
		res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("Unable to parse clue (%q)", text))
	}
	if res.Reference {
		res.Synonyms = nil
		res.Anagram = nil
	}
	return res
}
