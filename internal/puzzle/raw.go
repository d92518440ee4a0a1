package puzzle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/heartmarshall/xword-parse/internal/domain"
)

// Provider JSON deserialization types. A raw document maps puzzle ids to
// puzzles; each raw entry is consumed once by Parse.

// RawPuzzle is one puzzle as published by the provider.
type RawPuzzle struct {
	ID         string         `json:"id"`
	Number     json.Number    `json:"number"`
	Dimensions *RawDimensions `json:"dimensions" validate:"required"`
	Entries    []RawEntry     `json:"entries"` // validated one by one in Parse
}

// RawDimensions is the board size.
type RawDimensions struct {
	Rows int `json:"rows" validate:"gt=0"`
	Cols int `json:"cols" validate:"gt=0"`
}

// RawEntry is one across or down slot. Group lists every record describing
// the same logical answer; its first element is the merge key.
type RawEntry struct {
	ID                 string           `json:"id"                 validate:"required"`
	Group              []string         `json:"group"              validate:"required,min=1,dive,required"`
	Solution           string           `json:"solution"           validate:"required"`
	Length             int              `json:"length"             validate:"gt=0"`
	Direction          string           `json:"direction"          validate:"oneof=across down"`
	Position           *RawPosition     `json:"position"           validate:"required"`
	SeparatorLocations map[string][]int `json:"separatorLocations"`
	Clue               string           `json:"clue"`
}

// RawPosition is the start tile of an entry.
type RawPosition struct {
	X int `json:"x" validate:"gte=0"`
	Y int `json:"y" validate:"gte=0"`
}

// GroupKey is the merge key of the entry.
func (r RawEntry) GroupKey() string {
	if len(r.Group) == 0 {
		return r.ID
	}
	return r.Group[0]
}

// PuzzleID picks the puzzle's own id, then the provider's number, then
// fallback (typically the key the puzzle was stored under).
func (p RawPuzzle) PuzzleID(fallback string) string {
	if id := strings.TrimSpace(p.ID); id != "" {
		return id
	}
	if n := p.Number.String(); n != "" {
		return n
	}
	return fallback
}

// DecodeSet decodes a provider document mapping puzzle ids to puzzles.
func DecodeSet(r io.Reader) (map[string]RawPuzzle, error) {
	var set map[string]RawPuzzle
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode puzzle set: %w", err)
	}
	return set, nil
}

// DecodePuzzle decodes a single provider puzzle.
func DecodePuzzle(r io.Reader) (RawPuzzle, error) {
	var p RawPuzzle
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return RawPuzzle{}, fmt.Errorf("decode puzzle: %w", err)
	}
	return p, nil
}

// rawValidate reports fields by their JSON names.
var rawValidate *validator.Validate

func init() {
	rawValidate = validator.New(validator.WithRequiredStructEnabled())
	rawValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

func validatePuzzle(puzzleID string, p RawPuzzle) error {
	if err := rawValidate.Struct(p); err != nil {
		return toStructuralError(puzzleID, "", err)
	}
	if len(p.Entries) == 0 {
		return domain.NewStructuralError(puzzleID, "", domain.ErrMissingField,
			domain.FieldError{Field: "entries", Message: "at least one entry required"})
	}
	return nil
}

func validateEntry(puzzleID string, r RawEntry) error {
	if err := rawValidate.Struct(r); err != nil {
		return toStructuralError(puzzleID, r.ID, err)
	}
	return nil
}

// toStructuralError maps validator failures onto the structural error
// taxonomy: a bad direction is ErrUnknownDirection, bad numbers are
// ErrGeometry, anything else is a missing field.
func toStructuralError(puzzleID, entryID string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewStructuralError(puzzleID, entryID, fmt.Errorf("%w: %w", domain.ErrMissingField, err))
	}

	cause := domain.ErrMissingField
	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{Field: fieldPath(fe), Message: describe(fe)})
		switch {
		case fe.Field() == "direction":
			cause = domain.ErrUnknownDirection
		case fe.Tag() == "gt" || fe.Tag() == "gte":
			if cause == domain.ErrMissingField {
				cause = domain.ErrGeometry
			}
		}
	}
	return domain.NewStructuralError(puzzleID, entryID, cause, fields...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "oneof":
		return fmt.Sprintf("%q is not one of [%s]", fmt.Sprint(fe.Value()), fe.Param())
	case "gt", "gte", "min":
		return fmt.Sprintf("%v must be %s %s", fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}

// fieldPath drops the struct type name: "RawEntry.position.x" -> "position.x".
func fieldPath(fe validator.FieldError) string {
	_, path, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return path
}
