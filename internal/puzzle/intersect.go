package puzzle

import "slices"

// Pairing is one crossing seen from Self's side.
type Pairing struct {
	Self  Occupant `json:"self"`
	Other Occupant `json:"other"`
}

// IntersectionIndex lists, per entry, every crossing with another entry.
// Each physical crossing is recorded twice, once under each entry, so that
// either side can look it up directly.
type IntersectionIndex struct {
	byEntry map[string][]Pairing
	total   int
}

// NewIntersectionIndex derives the crossings of g. Every entry on the grid
// has a key, possibly with no pairings.
func NewIntersectionIndex(g *Grid) *IntersectionIndex {
	idx := &IntersectionIndex{byEntry: make(map[string][]Pairing, len(g.entryIDs))}
	for _, id := range g.entryIDs {
		idx.byEntry[id] = nil
	}

	for _, c := range g.Coords() {
		occupants := g.cells[c]
		if len(occupants) < 2 {
			continue
		}
		for _, self := range occupants {
			for _, other := range occupants {
				if self.EntryID == other.EntryID {
					continue
				}
				idx.byEntry[self.EntryID] = append(idx.byEntry[self.EntryID], Pairing{Self: self, Other: other})
				idx.total++
			}
		}
	}
	return idx
}

// For returns the crossings of entry id.
func (x *IntersectionIndex) For(id string) []Pairing {
	return slices.Clone(x.byEntry[id])
}

// Crosses reports whether entries a and b share a tile.
func (x *IntersectionIndex) Crosses(a, b string) bool {
	return slices.ContainsFunc(x.byEntry[a], func(p Pairing) bool { return p.Other.EntryID == b })
}

// EntryIDs returns the keys of the index in sorted order.
func (x *IntersectionIndex) EntryIDs() []string {
	ids := make([]string, 0, len(x.byEntry))
	for id := range x.byEntry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len is the number of recorded pairings, twice the number of crossings.
func (x *IntersectionIndex) Len() int { return x.total }
