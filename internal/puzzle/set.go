package puzzle

import (
	"iter"
	"slices"

	"github.com/heartmarshall/xword-parse/internal/domain"
)

// Set is a collection of finalized puzzles keyed by puzzle id. Iteration is
// in ascending id order.
type Set struct {
	ids     []string
	puzzles map[string]*Puzzle
}

// NewSet collects puzzles. Two puzzles with the same id are a structural
// error.
func NewSet(puzzles ...*Puzzle) (*Set, error) {
	s := &Set{puzzles: make(map[string]*Puzzle, len(puzzles))}
	for _, p := range puzzles {
		if _, dup := s.puzzles[p.ID()]; dup {
			return nil, domain.NewStructuralError(p.ID(), "", domain.ErrDuplicatePuzzle)
		}
		s.puzzles[p.ID()] = p
		s.ids = append(s.ids, p.ID())
	}
	slices.Sort(s.ids)
	return s, nil
}

func (s *Set) Len() int { return len(s.ids) }

// IDs returns the puzzle ids in ascending order.
func (s *Set) IDs() []string { return slices.Clone(s.ids) }

func (s *Set) Get(id string) (*Puzzle, bool) {
	p, ok := s.puzzles[id]
	return p, ok
}

// All yields every puzzle with its id.
func (s *Set) All() iter.Seq2[string, *Puzzle] {
	return func(yield func(string, *Puzzle) bool) {
		for _, id := range s.ids {
			if !yield(id, s.puzzles[id]) {
				return
			}
		}
	}
}

// Entries yields every canonical entry of every puzzle, paired with its
// puzzle.
func (s *Set) Entries() iter.Seq2[*Puzzle, *domain.Entry] {
	return func(yield func(*Puzzle, *domain.Entry) bool) {
		for _, id := range s.ids {
			p := s.puzzles[id]
			for _, e := range p.entries {
				if !yield(p, e) {
					return
				}
			}
		}
	}
}

// Features returns one output record per entry across the whole set.
func (s *Set) Features() []FeatureRecord {
	var out []FeatureRecord
	for p, e := range s.Entries() {
		out = append(out, NewFeatureRecord(p.ID(), e))
	}
	return out
}
