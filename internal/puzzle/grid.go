package puzzle

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/heartmarshall/xword-parse/internal/domain"
)

// Occupant is a back-reference from a tile to the entry letter on it.
type Occupant struct {
	EntryID string `json:"entry_id"`
	Index   int    `json:"index"`
}

// Conflict is a tile whose occupants disagree on the letter.
type Conflict struct {
	Coord domain.Coord
	First Occupant
	Other Occupant
	Want  byte
	Got   byte
}

func (c Conflict) Error() string {
	return fmt.Sprintf("tile %s: %s[%d]=%q but %s[%d]=%q",
		c.Coord, c.First.EntryID, c.First.Index, c.Want, c.Other.EntryID, c.Other.Index, c.Got)
}

// GridBuilder registers entries on a board. Build finalizes it into an
// immutable Grid; the builder must not be used afterwards.
type GridBuilder struct {
	rows, cols int
	order      []string
	entries    map[string]*domain.Entry
	cells      map[domain.Coord][]Occupant
}

// NewGridBuilder starts a board of the given size.
func NewGridBuilder(rows, cols int) *GridBuilder {
	return &GridBuilder{
		rows:    rows,
		cols:    cols,
		entries: make(map[string]*domain.Entry),
		cells:   make(map[domain.Coord][]Occupant),
	}
}

// Add registers every letter of e at its tile. Tiles outside the board and
// entries added twice are ErrGeometry.
func (b *GridBuilder) Add(e *domain.Entry) error {
	if _, dup := b.entries[e.ID()]; dup {
		return fmt.Errorf("%w: entry %q placed twice", domain.ErrGeometry, e.ID())
	}

	tiles := e.Tiles()
	for _, c := range tiles {
		if c.X < 0 || c.X >= b.cols || c.Y < 0 || c.Y >= b.rows {
			return fmt.Errorf("%w: entry %q tile %s outside %dx%d board", domain.ErrGeometry, e.ID(), c, b.rows, b.cols)
		}
	}

	b.entries[e.ID()] = e
	b.order = append(b.order, e.ID())
	for i, c := range tiles {
		b.cells[c] = append(b.cells[c], Occupant{EntryID: e.ID(), Index: i})
	}
	return nil
}

// Build derives the solved-letter view and returns the finalized grid.
func (b *GridBuilder) Build() *Grid {
	g := &Grid{
		rows:     b.rows,
		cols:     b.cols,
		entryIDs: slices.Clone(b.order),
		cells:    maps.Clone(b.cells),
		letters:  make(map[domain.Coord]byte, len(b.cells)),
	}

	for _, c := range g.Coords() {
		occupants := g.cells[c]
		first := occupants[0]
		want, _ := b.entries[first.EntryID].Letter(first.Index)
		g.letters[c] = want

		for _, o := range occupants[1:] {
			got, _ := b.entries[o.EntryID].Letter(o.Index)
			if got != want {
				g.conflicts = append(g.conflicts, Conflict{Coord: c, First: first, Other: o, Want: want, Got: got})
			}
		}
	}
	return g
}

// Grid maps board tiles to the entries occupying them. Blank tiles have no
// occupants and are absent from every view.
type Grid struct {
	rows, cols int
	entryIDs   []string
	cells      map[domain.Coord][]Occupant
	letters    map[domain.Coord]byte
	conflicts  []Conflict
}

// Dimensions returns rows and columns.
func (g *Grid) Dimensions() (rows, cols int) { return g.rows, g.cols }

// Occupants returns who occupies c, in registration order. Blank tiles
// return nil.
func (g *Grid) Occupants(c domain.Coord) []Occupant {
	return slices.Clone(g.cells[c])
}

// Letter returns the solved letter at c. ok is false for a blank tile.
func (g *Grid) Letter(c domain.Coord) (letter byte, ok bool) {
	letter, ok = g.letters[c]
	return letter, ok
}

// Letters returns the solved-letter view. Blank tiles are absent.
func (g *Grid) Letters() map[domain.Coord]byte {
	return maps.Clone(g.letters)
}

// Coords lists the occupied tiles column by column (x outer, y inner).
func (g *Grid) Coords() []domain.Coord {
	coords := slices.Collect(maps.Keys(g.cells))
	slices.SortFunc(coords, func(a, b domain.Coord) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Y - b.Y
	})
	return coords
}

// EntryIDs lists the registered entries in registration order.
func (g *Grid) EntryIDs() []string { return slices.Clone(g.entryIDs) }

// Conflicts lists tiles where crossing entries disagree.
func (g *Grid) Conflicts() []Conflict { return slices.Clone(g.conflicts) }

// Verify fails with ErrInconsistentGrid if any two occupants of a tile
// disagree on its letter.
func (g *Grid) Verify() error {
	if len(g.conflicts) == 0 {
		return nil
	}
	errs := make([]error, len(g.conflicts))
	for i, c := range g.conflicts {
		errs[i] = c
	}
	return fmt.Errorf("%w: %w", domain.ErrInconsistentGrid, errors.Join(errs...))
}
