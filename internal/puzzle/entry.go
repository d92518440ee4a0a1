package puzzle

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/heartmarshall/xword-parse/internal/clue"
	"github.com/heartmarshall/xword-parse/internal/domain"
)

// separatorChars normalizes provider separator keys. Anything not listed is
// displayed as is ("-" stays a hyphen).
var separatorChars = map[string]rune{
	",": ' ',
	";": ' ',
}

// NewEntry builds an Entry from one raw record. Structural problems (missing
// fields, unknown direction, letters not matching the span) are returned as
// *domain.StructuralError; clue problems come back as warnings.
func NewEntry(puzzleID string, r RawEntry) (*domain.Entry, []domain.Warning, error) {
	if err := validateEntry(puzzleID, r); err != nil {
		return nil, nil, err
	}

	tiles, err := domain.Span(domain.Coord{X: r.Position.X, Y: r.Position.Y}, domain.Direction(r.Direction), r.Length)
	if err != nil {
		cause := domain.ErrGeometry
		if errors.Is(err, domain.ErrUnknownDirection) {
			cause = domain.ErrUnknownDirection
		}
		return nil, nil, domain.NewStructuralError(puzzleID, r.ID, cause,
			domain.FieldError{Field: "direction", Message: err.Error()})
	}

	separators, err := parseSeparators(r.SeparatorLocations)
	if err != nil {
		return nil, nil, domain.NewStructuralError(puzzleID, r.ID, domain.ErrInvalidSeparator,
			domain.FieldError{Field: "separatorLocations", Message: err.Error()})
	}

	parsed := clue.Parse(r.Clue)
	var warnings []domain.Warning
	for _, msg := range parsed.Diagnostics {
		warnings = append(warnings, domain.Warning{PuzzleID: puzzleID, EntryID: r.ID, Message: msg})
	}

	entry, err := domain.NewEntry(domain.EntryParams{
		ID:         r.ID,
		Solution:   domain.LettersOnly(r.Solution),
		Separators: separators,
		Tiles:      tiles,
		ClueText:   r.Clue,
		Synonyms:   parsed.Synonyms,
		Anagram:    parsed.Anagram,
	})
	if err != nil {
		return nil, nil, withPuzzle(puzzleID, err)
	}
	return entry, warnings, nil
}

func parseSeparators(locations map[string][]int) ([]domain.Separator, error) {
	var separators []domain.Separator
	for key, indices := range locations {
		char, ok := separatorChars[key]
		if !ok {
			r, size := utf8.DecodeRuneInString(key)
			if size == 0 || size != len(key) {
				return nil, fmt.Errorf("separator %q must be a single character", key)
			}
			char = r
		}
		for _, idx := range indices {
			separators = append(separators, domain.Separator{Index: idx, Char: char})
		}
	}
	return separators, nil
}

// withPuzzle stamps the puzzle id onto a structural error raised below the
// puzzle level.
func withPuzzle(puzzleID string, err error) error {
	var se *domain.StructuralError
	if errors.As(err, &se) && se.PuzzleID == "" {
		se.PuzzleID = puzzleID
	}
	return err
}
