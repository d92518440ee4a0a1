package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Separator is a break point inside a multiword solution. Index is an offset
// into the unseparated solution; Char is what PrettySolution shows there.
type Separator struct {
	Index int  `json:"index"`
	Char  rune `json:"char"`
}

// Entry is one canonical answer slot. It is immutable: every accessor
// returns a copy, and the only way to obtain an Entry is NewEntry.
type Entry struct {
	id         string
	solution   string
	separators []Separator
	tiles      []Coord
	clueText   string
	synonyms   [][]string
	anagram    string
	hasAnagram bool
}

// EntryParams carries the fields of a new Entry.
type EntryParams struct {
	ID         string
	Solution   string
	Separators []Separator
	Tiles      []Coord
	ClueText   string
	Synonyms   [][]string // nil when the clue has no synonym subclue
	Anagram    *string
}

// NewEntry validates p and returns the Entry it describes. Separators are
// sorted by index. Failures are *StructuralError values with an empty
// PuzzleID; callers that know the puzzle fill it in.
func NewEntry(p EntryParams) (*Entry, error) {
	fail := func(cause error, field, format string, args ...any) error {
		return NewStructuralError("", p.ID, cause, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if p.ID == "" {
		return nil, fail(ErrMissingField, "id", "required")
	}
	if p.Solution == "" {
		return nil, fail(ErrMissingField, "solution", "blank solution")
	}
	if strings.IndexFunc(p.Solution, func(r rune) bool { return r < 'a' || r > 'z' }) >= 0 {
		return nil, fail(ErrInvalidSolution, "solution", "%q is not lowercase letters only", p.Solution)
	}
	if len(p.Tiles) != len(p.Solution) {
		return nil, fail(ErrLengthMismatch, "length", "solution has %d letters but spans %d tiles", len(p.Solution), len(p.Tiles))
	}

	separators := slices.Clone(p.Separators)
	slices.SortStableFunc(separators, func(a, b Separator) int { return cmp.Compare(a.Index, b.Index) })
	for i, sep := range separators {
		if sep.Index < 0 || sep.Index > len(p.Solution) {
			return nil, fail(ErrInvalidSeparator, "separatorLocations", "index %d outside [0,%d]", sep.Index, len(p.Solution))
		}
		if unicode.IsLetter(sep.Char) {
			return nil, fail(ErrInvalidSeparator, "separatorLocations", "letter %q used as separator", sep.Char)
		}
		if i > 0 && separators[i-1].Index == sep.Index {
			return nil, fail(ErrInvalidSeparator, "separatorLocations", "duplicate index %d", sep.Index)
		}
	}

	e := &Entry{
		id:         p.ID,
		solution:   p.Solution,
		separators: separators,
		tiles:      slices.Clone(p.Tiles),
		clueText:   p.ClueText,
		synonyms:   cloneGroups(p.Synonyms),
	}
	if p.Anagram != nil {
		e.anagram = *p.Anagram
		e.hasAnagram = true
	}
	return e, nil
}

func (e *Entry) ID() string       { return e.id }
func (e *Entry) Solution() string { return e.solution }
func (e *Entry) ClueText() string { return e.clueText }

// SolutionLength is the number of letters, excluding separators.
func (e *Entry) SolutionLength() int { return len(e.solution) }

// PrettyLength is the length of PrettySolution.
func (e *Entry) PrettyLength() int { return len(e.solution) + len(e.separators) }

func (e *Entry) Separators() []Separator { return slices.Clone(e.separators) }

// Tiles returns the board coordinates spanned, one per solution letter.
func (e *Entry) Tiles() []Coord { return slices.Clone(e.tiles) }

// Letter returns the solution letter at index i.
func (e *Entry) Letter(i int) (byte, bool) {
	if i < 0 || i >= len(e.solution) {
		return 0, false
	}
	return e.solution[i], true
}

// Synonyms returns one token group per synonym subclue, or nil.
func (e *Entry) Synonyms() [][]string { return cloneGroups(e.synonyms) }

// AllSynonyms flattens Synonyms into a single list, or returns nil.
func (e *Entry) AllSynonyms() []string {
	if len(e.synonyms) == 0 {
		return nil
	}
	var all []string
	for _, group := range e.synonyms {
		all = append(all, group...)
	}
	return all
}

// Anagram returns the normalized anagram key, if the clue had one.
func (e *Entry) Anagram() (string, bool) { return e.anagram, e.hasAnagram }

// IsTrivial reports whether the entry has neither synonyms nor an anagram,
// as is the case for "See 8 across" placeholders.
func (e *Entry) IsTrivial() bool {
	return len(e.synonyms) == 0 && !e.hasAnagram
}

// PrettySolution inserts each separator's character: "fullofbeans" with
// separators at 4 and 6 becomes "full of beans".
func (e *Entry) PrettySolution() string {
	return e.insertSeparators(func(s Separator) rune { return s.Char })
}

// UnderscoredSolution is PrettySolution with every separator rendered as
// JoinMarker.
func (e *Entry) UnderscoredSolution() string {
	return e.insertSeparators(func(Separator) rune { return JoinMarker })
}

// insertSeparators inserts separator k at Index+k, since each earlier
// insertion shifts the rest of the text right by one.
func (e *Entry) insertSeparators(char func(Separator) rune) string {
	text := make([]rune, 0, e.PrettyLength())
	text = append(text, []rune(e.solution)...)
	for k, sep := range e.separators {
		text = slices.Insert(text, sep.Index+k, char(sep))
	}
	return string(text)
}

// TokenizedSolution splits the solution at every separator index. It always
// returns len(Separators())+1 fragments.
func (e *Entry) TokenizedSolution() []string {
	tokens := make([]string, 0, len(e.separators)+1)
	start := 0
	for _, sep := range e.separators {
		tokens = append(tokens, e.solution[start:sep.Index])
		start = sep.Index
	}
	return append(tokens, e.solution[start:])
}

// TokenLengths returns the length of each TokenizedSolution fragment.
func (e *Entry) TokenLengths() []int {
	tokens := e.TokenizedSolution()
	lengths := make([]int, len(tokens))
	for i, t := range tokens {
		lengths[i] = len(t)
	}
	return lengths
}

// CheckInvariants verifies the relations between the derived views.
func (e *Entry) CheckInvariants() error {
	total := 0
	for _, n := range e.TokenLengths() {
		total += n
	}
	if total != len(e.solution) {
		return fmt.Errorf("entry %q: token lengths sum to %d, want %d", e.id, total, len(e.solution))
	}

	pretty := e.PrettySolution()
	if n := len([]rune(pretty)); n != e.PrettyLength() {
		return fmt.Errorf("entry %q: pretty solution has %d characters, want %d", e.id, n, e.PrettyLength())
	}
	if got := LettersOnly(pretty); got != e.solution {
		return fmt.Errorf("entry %q: pretty solution %q does not reduce to %q", e.id, pretty, e.solution)
	}
	if len(e.tiles) != len(e.solution) {
		return fmt.Errorf("entry %q: %d tiles for %d letters", e.id, len(e.tiles), len(e.solution))
	}
	return nil
}

func cloneGroups(groups [][]string) [][]string {
	if groups == nil {
		return nil
	}
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = slices.Clone(g)
	}
	return out
}
