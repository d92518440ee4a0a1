package puzzle

import (
	"fmt"

	"github.com/heartmarshall/xword-parse/internal/domain"
)

// MergeGroup reconciles the entries sharing one group key into a single
// canonical entry identified by key.
//
// A group of one is kept as is. Otherwise the one entry with synonyms or an
// anagram is canonical and absorbs every trivial ("See 8 across") entry in
// encounter order. A group with no such entry falls back to its first
// record, a group with several keeps the first; both cases are reported as
// warnings. Members are never modified.
func MergeGroup(puzzleID, key string, members []*domain.Entry) (*domain.Entry, []domain.Warning, error) {
	if len(members) == 0 {
		return nil, nil, domain.NewStructuralError(puzzleID, key, domain.ErrMissingField,
			domain.FieldError{Field: "group", Message: "no entries"})
	}

	warn := func(format string, args ...any) domain.Warning {
		return domain.Warning{PuzzleID: puzzleID, EntryID: key, Message: fmt.Sprintf(format, args...)}
	}

	if len(members) == 1 {
		if members[0].ID() == key {
			return members[0], nil, nil
		}
		e, err := newAccumulator(key, members[0]).build()
		return e, nil, withPuzzle(puzzleID, err)
	}

	var nonTrivial, trivial []*domain.Entry
	for _, m := range members {
		if m.IsTrivial() {
			trivial = append(trivial, m)
		} else {
			nonTrivial = append(nonTrivial, m)
		}
	}

	var warnings []domain.Warning
	var canonical *domain.Entry
	switch len(nonTrivial) {
	case 1:
		canonical = nonTrivial[0]
	case 0:
		warnings = append(warnings, warn("Invalid clue for group %q (maybe the clue refers to itself, e.g. \"See 8 across\" for group \"8-across\"?)", key))
		canonical, trivial = trivial[0], trivial[1:]
	default:
		clues := make([]string, len(nonTrivial))
		for i, e := range nonTrivial {
			clues[i] = e.ClueText()
		}
		warnings = append(warnings, warn("Multiple clues in group %q: %q", key, clues))
		canonical = nonTrivial[0]
	}

	acc := newAccumulator(key, canonical)
	for _, other := range trivial {
		if idx, dropped := acc.absorb(other); dropped {
			warnings = append(warnings, warn("Dropped duplicate separator at index %d while merging %q", idx, other.ID()))
		}
	}

	e, err := acc.build()
	if err != nil {
		return nil, warnings, withPuzzle(puzzleID, err)
	}
	return e, warnings, nil
}

// accumulator collects the fields of a merged entry.
type accumulator struct {
	params domain.EntryParams
}

func newAccumulator(id string, canonical *domain.Entry) *accumulator {
	p := domain.EntryParams{
		ID:         id,
		Solution:   canonical.Solution(),
		Separators: canonical.Separators(),
		Tiles:      canonical.Tiles(),
		ClueText:   canonical.ClueText(),
		Synonyms:   canonical.Synonyms(),
	}
	if key, ok := canonical.Anagram(); ok {
		p.Anagram = &key
	}
	return &accumulator{params: p}
}

// absorb appends other's letters and tiles, rebasing its separators by the
// length absorbed so far. A rebased separator landing on an index that is
// already taken is dropped; absorb reports the first such index.
func (a *accumulator) absorb(other *domain.Entry) (dropped int, ok bool) {
	offset := len(a.params.Solution)
	taken := make(map[int]bool, len(a.params.Separators))
	for _, s := range a.params.Separators {
		taken[s.Index] = true
	}

	for _, s := range other.Separators() {
		s.Index += offset
		if taken[s.Index] {
			if !ok {
				dropped, ok = s.Index, true
			}
			continue
		}
		taken[s.Index] = true
		a.params.Separators = append(a.params.Separators, s)
	}

	a.params.Solution += other.Solution()
	a.params.Tiles = append(a.params.Tiles, other.Tiles()...)
	return dropped, ok
}

func (a *accumulator) build() (*domain.Entry, error) {
	return domain.NewEntry(a.params)
}
