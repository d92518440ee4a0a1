package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every structural failure matches ErrStructural plus one of
// the specific causes below.
var (
	ErrStructural       = errors.New("structural error")
	ErrUnknownDirection = errors.New("unknown direction")
	ErrMissingField     = errors.New("missing required field")
	ErrGeometry         = errors.New("malformed geometry")
	ErrLengthMismatch   = errors.New("solution length mismatch")
	ErrInvalidSeparator = errors.New("invalid separator")
	ErrInvalidSolution  = errors.New("invalid solution")
	ErrInconsistentGrid = errors.New("inconsistent grid")
	ErrDuplicatePuzzle  = errors.New("duplicate puzzle")
)

// FieldError describes a problem with one field of a raw record.
type FieldError struct {
	Field   string
	Message string
}

// StructuralError is fatal for the entry or puzzle being built.
// PuzzleID and EntryID identify the offender; EntryID is empty when the
// puzzle as a whole is malformed.
type StructuralError struct {
	PuzzleID string
	EntryID  string
	Fields   []FieldError
	Err      error
}

func (e *StructuralError) Error() string {
	var b strings.Builder
	b.WriteString("puzzle ")
	b.WriteString(quoteOrDash(e.PuzzleID))
	if e.EntryID != "" {
		b.WriteString(" entry ")
		b.WriteString(quoteOrDash(e.EntryID))
	}
	b.WriteString(": ")
	b.WriteString(e.cause().Error())

	switch len(e.Fields) {
	case 0:
	case 1:
		fmt.Fprintf(&b, " (%s: %s)", e.Fields[0].Field, e.Fields[0].Message)
	default:
		fmt.Fprintf(&b, " (%d fields)", len(e.Fields))
	}
	return b.String()
}

// Unwrap exposes both ErrStructural and the specific cause to errors.Is.
func (e *StructuralError) Unwrap() []error {
	return []error{ErrStructural, e.cause()}
}

func (e *StructuralError) cause() error {
	if e.Err == nil {
		return ErrStructural
	}
	return e.Err
}

// NewStructuralError creates a StructuralError for a single entry.
func NewStructuralError(puzzleID, entryID string, cause error, fields ...FieldError) *StructuralError {
	return &StructuralError{
		PuzzleID: puzzleID,
		EntryID:  entryID,
		Fields:   fields,
		Err:      cause,
	}
}

// Warning is a non-fatal diagnostic. Parsing always continues past it.
type Warning struct {
	PuzzleID string `json:"puzzle_id"`
	EntryID  string `json:"entry_id"`
	Message  string `json:"message"`
}

func (w Warning) String() string {
	s := w.Message
	if w.EntryID != "" {
		s += fmt.Sprintf(" for entry %q", w.EntryID)
	}
	if w.PuzzleID != "" {
		s += fmt.Sprintf(" of crossword %q", w.PuzzleID)
	}
	return s
}

func quoteOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return fmt.Sprintf("%q", s)
}
