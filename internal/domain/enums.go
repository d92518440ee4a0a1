package domain

import "fmt"

// Direction is the orientation of an entry on the board.
type Direction string

const (
	DirectionAcross Direction = "across"
	DirectionDown   Direction = "down"
)

func (d Direction) String() string { return string(d) }

func (d Direction) IsValid() bool {
	switch d {
	case DirectionAcross, DirectionDown:
		return true
	}
	return false
}

// step is the offset between consecutive tiles of an entry.
func (d Direction) step() (dx, dy int) {
	if d == DirectionDown {
		return 0, 1
	}
	return 1, 0
}

// Coord is one tile of the board. X grows left to right, Y top to bottom,
// both zero-based.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Span walks length tiles from start in direction d: across increments X,
// down increments Y. It fails with ErrUnknownDirection for any other
// direction and ErrGeometry for a non-positive length.
func Span(start Coord, d Direction, length int) ([]Coord, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w %q", ErrUnknownDirection, string(d))
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: length %d", ErrGeometry, length)
	}

	dx, dy := d.step()
	tiles := make([]Coord, length)
	for i := range tiles {
		tiles[i] = Coord{X: start.X + i*dx, Y: start.Y + i*dy}
	}
	return tiles, nil
}
