package puzzle

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/xword-parse/internal/domain"
)

func parseWithID(t *testing.T, id string) *Puzzle {
	t.Helper()
	raw := loadFixture(t)
	raw.ID = id
	p, _, err := Parse("", raw, Options{})
	require.NoError(t, err)
	return p
}

func TestNewSet(t *testing.T) {
	t.Parallel()

	s, err := NewSet(parseWithID(t, "b"), parseWithID(t, "a"))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	p, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, "b", p.ID())
	_, ok = s.Get("c")
	assert.False(t, ok)

	var order []string
	for id, p := range s.All() {
		assert.Equal(t, id, p.ID())
		order = append(order, id)
	}
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestNewSet_Duplicate(t *testing.T) {
	t.Parallel()

	s, err := NewSet(parseWithID(t, "a"), parseWithID(t, "a"))
	assert.Nil(t, s)
	assert.ErrorIs(t, err, domain.ErrDuplicatePuzzle)
	assert.ErrorIs(t, err, domain.ErrStructural)
}

func TestSet_Entries(t *testing.T) {
	t.Parallel()

	s, err := NewSet(parseWithID(t, "b"), parseWithID(t, "a"))
	require.NoError(t, err)

	var keys []string
	for p, e := range s.Entries() {
		keys = append(keys, p.ID()+"/"+e.ID())
	}
	assert.Equal(t, []string{
		"a/1-across", "a/1-down", "a/2-down", "a/3-across",
		"b/1-across", "b/1-down", "b/2-down", "b/3-across",
	}, keys)

	// Stopping early is honored.
	n := 0
	for range s.Entries() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestSet_Features(t *testing.T) {
	t.Parallel()

	s, err := NewSet(parseWithID(t, "28871"))
	require.NoError(t, err)

	records := s.Features()
	require.Len(t, records, 4)

	due := records[3]
	assert.Equal(t, "28871-3-across", due.Key)
	assert.Equal(t, FeatureRecord{
		Key:                 "28871-3-across",
		Solution:            "duedate",
		PrettySolution:      "due date",
		UnderscoredSolution: "due_date",
		TokenizedSolution:   []string{"due", "date"},
		TokenLengths:        []int{3, 4},
		Synonyms:            [][]string{{"deadline", "for", "payment"}},
		AllSynonyms:         []string{"deadline", "for", "payment"},
	}, due)
	assert.Equal(t, "due_date deadline for payment", due.TrainingLine())

	for _, r := range records {
		assert.True(t, strings.HasPrefix(r.Key, "28871-"), r.Key)
	}
}

func TestFeatureRecord_JSON(t *testing.T) {
	t.Parallel()

	key := "eat"
	e, err := domain.NewEntry(domain.EntryParams{
		ID:       "2-down",
		Solution: "tea",
		Tiles:    []domain.Coord{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}},
		Synonyms: [][]string{{"drink"}},
		Anagram:  &key,
	})
	require.NoError(t, err)

	data, err := json.Marshal(NewFeatureRecord("7", e))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"solution": "tea",
		"pretty_solution": "tea",
		"underscored_solution": "tea",
		"tokenized_solution": ["tea"],
		"token_lengths": [3],
		"synonyms": [["drink"]],
		"all_synonyms": ["drink"],
		"anagram": "eat"
	}`, string(data))
}

func TestFeatureRecord_TrainingLine(t *testing.T) {
	t.Parallel()

	e, err := domain.NewEntry(domain.EntryParams{
		ID:       "4-down",
		Solution: "date",
		Tiles:    []domain.Coord{{X: 4, Y: 0}, {X: 4, Y: 1}, {X: 4, Y: 2}, {X: 4, Y: 3}},
		ClueText: "See 3",
	})
	require.NoError(t, err)

	r := NewFeatureRecord("7", e)
	assert.Empty(t, r.TrainingLine())
	assert.Nil(t, r.Anagram)
}

func TestDecodeSet(t *testing.T) {
	t.Parallel()

	fixture, err := os.ReadFile(testdataPath(t, "puzzle.json"))
	require.NoError(t, err)
	doc := `{"first": ` + string(fixture) + `, "second": ` + string(fixture) + `}`

	raws, err := DecodeSet(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Len(t, raws["second"].Entries, 5)
	assert.Equal(t, "28871", raws["first"].PuzzleID("first"))

	_, err = DecodeSet(strings.NewReader(`{"first": [}`))
	assert.Error(t, err)

	_, err = DecodePuzzle(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestRawEntry_GroupKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3-across", RawEntry{ID: "4-down", Group: []string{"3-across", "4-down"}}.GroupKey())
	assert.Equal(t, "4-down", RawEntry{ID: "4-down"}.GroupKey())
}
