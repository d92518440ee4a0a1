package puzzle

import (
	"strings"

	"github.com/heartmarshall/xword-parse/internal/domain"
)

// FeatureRecord is the per-entry view handed to the answer-ranking model.
type FeatureRecord struct {
	Key                 string     `json:"-"`
	Solution            string     `json:"solution"`
	PrettySolution      string     `json:"pretty_solution"`
	UnderscoredSolution string     `json:"underscored_solution"`
	TokenizedSolution   []string   `json:"tokenized_solution"`
	TokenLengths        []int      `json:"token_lengths"`
	Synonyms            [][]string `json:"synonyms"`
	AllSynonyms         []string   `json:"all_synonyms"`
	Anagram             *string    `json:"anagram"`
}

// NewFeatureRecord snapshots e. Key is "<puzzle id>-<entry id>", where the
// puzzle id is RawPuzzle.PuzzleID: the provider id when present (for example
// "crosswords/quick/12000-1-across"), the puzzle number otherwise.
func NewFeatureRecord(puzzleID string, e *domain.Entry) FeatureRecord {
	r := FeatureRecord{
		Key:                 puzzleID + "-" + e.ID(),
		Solution:            e.Solution(),
		PrettySolution:      e.PrettySolution(),
		UnderscoredSolution: e.UnderscoredSolution(),
		TokenizedSolution:   e.TokenizedSolution(),
		TokenLengths:        e.TokenLengths(),
		Synonyms:            e.Synonyms(),
		AllSynonyms:         e.AllSynonyms(),
	}
	if key, ok := e.Anagram(); ok {
		r.Anagram = &key
	}
	return r
}

// TrainingLine renders the record as "<underscored solution> <synonym>...",
// or "" when there are no synonyms to learn from.
func (r FeatureRecord) TrainingLine() string {
	if len(r.AllSynonyms) == 0 {
		return ""
	}
	return r.UnderscoredSolution + " " + strings.Join(r.AllSynonyms, " ")
}
