package puzzle

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/xword-parse/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(filename), "testdata", name)
}

// loadFixture decodes testdata/puzzle.json: a 5x5 board where 3-across and
// 4-down form one "due date" answer.
func loadFixture(t *testing.T) RawPuzzle {
	t.Helper()
	f, err := os.Open(testdataPath(t, "puzzle.json"))
	require.NoError(t, err)
	defer f.Close()

	raw, err := DecodePuzzle(f)
	require.NoError(t, err)
	return raw
}

func rawEntryByID(t *testing.T, raw RawPuzzle, id string) *RawEntry {
	t.Helper()
	for i := range raw.Entries {
		if raw.Entries[i].ID == id {
			return &raw.Entries[i]
		}
	}
	t.Fatalf("fixture has no entry %q", id)
	return nil
}

func TestParse_Fixture(t *testing.T) {
	t.Parallel()

	p, warnings, err := Parse("fallback", loadFixture(t), Options{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "28871", p.ID())
	rows, cols := p.Dimensions()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 5, cols)

	var ids []string
	for _, e := range p.Entries() {
		ids = append(ids, e.ID())
		assert.NoError(t, e.CheckInvariants(), e.ID())
	}
	assert.Equal(t, []string{"1-across", "1-down", "2-down", "3-across"}, ids)

	_, ok := p.Entry("4-down")
	assert.False(t, ok, "4-down is merged into 3-across")

	due, ok := p.Entry("3-across")
	require.True(t, ok)
	assert.Equal(t, "duedate", due.Solution())
	assert.Equal(t, "due date", due.PrettySolution())
	assert.Equal(t, "due_date", due.UnderscoredSolution())
	assert.Equal(t, []string{"due", "date"}, due.TokenizedSolution())
	assert.Equal(t, []int{3, 4}, due.TokenLengths())
	assert.Equal(t, [][]string{{"deadline", "for", "payment"}}, due.Synonyms())
	assert.Equal(t, []domain.Coord{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 4, Y: 0}, {X: 4, Y: 1}, {X: 4, Y: 2}, {X: 4, Y: 3}}, due.Tiles())

	cod, ok := p.Entry("1-down")
	require.True(t, ok)
	assert.Equal(t, [][]string{{"fish", "often", "salted"}}, cod.Synonyms())
}

func TestParse_Grid(t *testing.T) {
	t.Parallel()

	p, _, err := Parse("", loadFixture(t), Options{})
	require.NoError(t, err)

	g := p.Grid()
	assert.Len(t, g.Letters(), 12)
	assert.Empty(t, g.Conflicts())
	assert.NoError(t, g.Verify())

	l, ok := g.Letter(domain.Coord{X: 4, Y: 3})
	require.True(t, ok)
	assert.Equal(t, byte('e'), l)

	assert.Equal(t, []Occupant{{EntryID: "3-across", Index: 3}}, g.Occupants(domain.Coord{X: 4, Y: 0}))
	assert.Equal(t, []Occupant{
		{EntryID: "1-down", Index: 2},
		{EntryID: "3-across", Index: 0},
	}, g.Occupants(domain.Coord{X: 0, Y: 2}))
}

func TestParse_Intersections(t *testing.T) {
	t.Parallel()

	p, _, err := Parse("", loadFixture(t), Options{})
	require.NoError(t, err)

	idx := p.Intersections()
	assert.Equal(t, 8, idx.Len())
	assert.Equal(t, []string{"1-across", "1-down", "2-down", "3-across"}, idx.EntryIDs())

	assert.Equal(t, []Pairing{
		{Self: Occupant{"1-across", 0}, Other: Occupant{"1-down", 0}},
		{Self: Occupant{"1-across", 2}, Other: Occupant{"2-down", 0}},
	}, idx.For("1-across"))
	assert.Equal(t, []Pairing{
		{Self: Occupant{"3-across", 0}, Other: Occupant{"1-down", 2}},
		{Self: Occupant{"3-across", 2}, Other: Occupant{"2-down", 2}},
	}, idx.For("3-across"))

	assert.True(t, idx.Crosses("1-down", "3-across"))
	assert.False(t, idx.Crosses("1-down", "2-down"))
}

func TestPuzzle_String(t *testing.T) {
	t.Parallel()

	p, _, err := Parse("", loadFixture(t), Options{})
	require.NoError(t, err)

	want := strings.Join([]string{
		"c a t ██d ",
		"o ██o ██a ",
		"d u e ██t ",
		"████████e ",
		"██████████",
	}, "\n")
	assert.Equal(t, want, p.String())
}

func TestParse_PuzzleID(t *testing.T) {
	t.Parallel()

	raw := loadFixture(t)
	raw.Number = ""
	p, _, err := Parse("from-key", raw, Options{})
	require.NoError(t, err)
	assert.Equal(t, "from-key", p.ID())

	raw.ID = " own-id "
	p, _, err = Parse("from-key", raw, Options{})
	require.NoError(t, err)
	assert.Equal(t, "own-id", p.ID())
}

func TestParse_StructuralErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(t *testing.T, raw *RawPuzzle)
		wantErr   error
		wantEntry string
	}{
		{
			name: "unknown direction",
			mutate: func(t *testing.T, raw *RawPuzzle) {
				rawEntryByID(t, *raw, "2-down").Direction = "diagonal"
			},
			wantErr:   domain.ErrUnknownDirection,
			wantEntry: "2-down",
		},
		{
			name: "missing position",
			mutate: func(t *testing.T, raw *RawPuzzle) {
				rawEntryByID(t, *raw, "1-down").Position = nil
			},
			wantErr:   domain.ErrMissingField,
			wantEntry: "1-down",
		},
		{
			name: "length disagrees with solution",
			mutate: func(t *testing.T, raw *RawPuzzle) {
				rawEntryByID(t, *raw, "1-across").Length = 4
			},
			wantErr:   domain.ErrLengthMismatch,
			wantEntry: "1-across",
		},
		{
			name: "entry off the board",
			mutate: func(t *testing.T, raw *RawPuzzle) {
				raw.Dimensions.Rows = 3
			},
			wantErr:   domain.ErrGeometry,
			wantEntry: "3-across",
		},
		{
			name: "missing dimensions",
			mutate: func(_ *testing.T, raw *RawPuzzle) {
				raw.Dimensions = nil
			},
			wantErr: domain.ErrMissingField,
		},
		{
			name: "no entries",
			mutate: func(_ *testing.T, raw *RawPuzzle) {
				raw.Entries = nil
			},
			wantErr: domain.ErrMissingField,
		},
		{
			name: "duplicate separator index",
			mutate: func(t *testing.T, raw *RawPuzzle) {
				rawEntryByID(t, *raw, "3-across").SeparatorLocations = map[string][]int{",": {2}, "-": {2}}
			},
			wantErr:   domain.ErrInvalidSeparator,
			wantEntry: "3-across",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := loadFixture(t)
			tt.mutate(t, &raw)

			p, warnings, err := Parse("", raw, Options{})
			require.Error(t, err)
			assert.Nil(t, p)
			assert.Nil(t, warnings)
			assert.True(t, IsStructural(err))
			assert.ErrorIs(t, err, tt.wantErr)

			var se *domain.StructuralError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "28871", se.PuzzleID)
			assert.Equal(t, tt.wantEntry, se.EntryID)
		})
	}
}

func TestParse_ConflictingLetters(t *testing.T) {
	t.Parallel()

	conflicting := func(t *testing.T) RawPuzzle {
		raw := loadFixture(t)
		rawEntryByID(t, raw, "2-down").Solution = "SOE"
		return raw
	}

	t.Run("lenient", func(t *testing.T) {
		t.Parallel()
		p, warnings, err := Parse("", conflicting(t), Options{})
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, "2-down", warnings[0].EntryID)
		assert.Contains(t, warnings[0].Message, "Conflicting letters")

		// The first registered occupant wins.
		l, _ := p.Grid().Letter(domain.Coord{X: 2, Y: 0})
		assert.Equal(t, byte('t'), l)
		require.Len(t, p.Grid().Conflicts(), 1)
		assert.Equal(t, Conflict{
			Coord: domain.Coord{X: 2, Y: 0},
			First: Occupant{"1-across", 2},
			Other: Occupant{"2-down", 0},
			Want:  't',
			Got:   's',
		}, p.Grid().Conflicts()[0])
	})

	t.Run("strict", func(t *testing.T) {
		t.Parallel()
		p, _, err := Parse("", conflicting(t), Options{StrictGrid: true})
		assert.Nil(t, p)
		assert.ErrorIs(t, err, domain.ErrInconsistentGrid)
		assert.ErrorIs(t, err, domain.ErrStructural)
	})
}

func TestParse_ClueWarnings(t *testing.T) {
	t.Parallel()

	raw := loadFixture(t)
	rawEntryByID(t, raw, "1-down").Clue = "?! (3)"
	rawEntryByID(t, raw, "2-down").Clue = "Digit - Eot (anag) - Teo (anag) (3)"

	p, warnings, err := Parse("", raw, Options{})
	require.NoError(t, err)
	require.Len(t, warnings, 2)

	assert.Equal(t, domain.Warning{PuzzleID: "28871", EntryID: "1-down", Message: `Unable to parse clue ("?! (3)")`}, warnings[0])
	assert.Equal(t, "2-down", warnings[1].EntryID)
	assert.Contains(t, warnings[1].Message, "Multiple anagrams")

	cod, _ := p.Entry("1-down")
	assert.True(t, cod.IsTrivial())
	toe, _ := p.Entry("2-down")
	key, ok := toe.Anagram()
	assert.True(t, ok)
	assert.Equal(t, "eot", key)
}

func TestParse_IsPure(t *testing.T) {
	t.Parallel()

	raw := loadFixture(t)
	first, _, err := Parse("", raw, Options{})
	require.NoError(t, err)
	second, _, err := Parse("", raw, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, first.Intersections(), second.Intersections())
	assert.Equal(t, "CAT", raw.Entries[0].Solution, "raw input is not modified")
}
