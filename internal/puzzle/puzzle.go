// Package puzzle turns raw provider crossword records into finalized
// puzzles: canonical entries, a coordinate grid and a crossing index.
// Pure functions: raw structs in, immutable values and warnings out.
package puzzle

import (
	"errors"
	"slices"
	"strings"

	"github.com/heartmarshall/xword-parse/internal/domain"
)

// Options tunes Parse.
type Options struct {
	// StrictGrid turns crossing letters that disagree into a structural
	// failure instead of a warning.
	StrictGrid bool
}

// Puzzle is a finalized crossword. Nothing in it changes after Parse.
type Puzzle struct {
	id            string
	rows, cols    int
	entries       []*domain.Entry
	byID          map[string]*domain.Entry
	grid          *Grid
	intersections *IntersectionIndex
}

// Parse builds one puzzle. key is used as the puzzle id when the raw record
// carries none. It has no side effects and shares no state, so callers may
// run it concurrently for different puzzles.
//
// Structural problems anywhere in the puzzle fail the whole puzzle with a
// *domain.StructuralError. Semantic problems are returned as warnings.
func Parse(key string, raw RawPuzzle, opts Options) (*Puzzle, []domain.Warning, error) {
	id := raw.PuzzleID(key)
	if err := validatePuzzle(id, raw); err != nil {
		return nil, nil, err
	}

	var warnings []domain.Warning

	// Group entries by merge key, in first-encounter order.
	var keys []string
	groups := make(map[string][]*domain.Entry)
	for _, r := range raw.Entries {
		e, ws, err := NewEntry(id, r)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, ws...)

		k := r.GroupKey()
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], e)
	}

	p := &Puzzle{
		id:   id,
		rows: raw.Dimensions.Rows,
		cols: raw.Dimensions.Cols,
		byID: make(map[string]*domain.Entry, len(keys)),
	}
	builder := NewGridBuilder(p.rows, p.cols)

	for _, k := range keys {
		e, ws, err := MergeGroup(id, k, groups[k])
		warnings = append(warnings, ws...)
		if err != nil {
			return nil, nil, err
		}
		if err := builder.Add(e); err != nil {
			return nil, nil, domain.NewStructuralError(id, e.ID(), err)
		}
		p.entries = append(p.entries, e)
		p.byID[e.ID()] = e
	}

	p.grid = builder.Build()
	if err := p.grid.Verify(); err != nil {
		if opts.StrictGrid {
			return nil, nil, domain.NewStructuralError(id, "", err)
		}
		for _, c := range p.grid.Conflicts() {
			warnings = append(warnings, domain.Warning{PuzzleID: id, EntryID: c.Other.EntryID, Message: "Conflicting letters: " + c.Error()})
		}
	}
	p.intersections = NewIntersectionIndex(p.grid)

	return p, warnings, nil
}

func (p *Puzzle) ID() string { return p.id }

// Dimensions returns rows and columns.
func (p *Puzzle) Dimensions() (rows, cols int) { return p.rows, p.cols }

// Entries returns the canonical entries in first-encounter group order.
func (p *Puzzle) Entries() []*domain.Entry { return slices.Clone(p.entries) }

// Entry looks up a canonical entry by its group key.
func (p *Puzzle) Entry(id string) (*domain.Entry, bool) {
	e, ok := p.byID[id]
	return e, ok
}

func (p *Puzzle) Grid() *Grid { return p.grid }

func (p *Puzzle) Intersections() *IntersectionIndex { return p.intersections }

// String draws the solved board, one row per line: a letter and a space per
// occupied tile, a full block pair per blank tile.
func (p *Puzzle) String() string {
	var b strings.Builder
	for y := range p.rows {
		for x := range p.cols {
			if l, ok := p.grid.Letter(domain.Coord{X: x, Y: y}); ok {
				b.WriteByte(l)
				b.WriteByte(' ')
			} else {
				b.WriteString("██")
			}
		}
		if y+1 < p.rows {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// IsStructural reports whether err is a structural failure.
func IsStructural(err error) bool {
	return errors.Is(err, domain.ErrStructural)
}
