package statement

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/rentalai/rentalai/internal/normalize"
)

// ColumnMapping holds the table column index of each semantic field, or -1
// when the table has no such column.
type ColumnMapping struct {
	Date      int
	Narration int
	Debit     int
	Credit    int
}

// NoMapping is the mapping of a document whose header has not been seen.
var NoMapping = ColumnMapping{Date: -1, Narration: -1, Debit: -1, Credit: -1}

// Valid reports whether the mapping can produce rows.
func (m ColumnMapping) Valid() bool {
	return m.Date >= 0 && m.Narration >= 0
}

// minFuzzyLen is the shortest single-word synonym that tolerates a one
// character typo. Shorter words sit too close to unrelated ones ("date" and
// "data").
const minFuzzyLen = 6

// DetectHeader searches the first window rows for one that names both a date
// and a narration column. It returns the mapping, the header row index and
// whether a header was found. Each column is assigned at most once, to the
// first field (date, narration, debit, credit) it matches.
func DetectHeader(rows [][]string, syn HeaderSynonyms, window int) (ColumnMapping, int, bool) {
	if window <= 0 || window > len(rows) {
		window = len(rows)
	}
	for i := 0; i < window; i++ {
		m := mapHeader(rows[i], syn)
		if m.Valid() {
			return m, i, true
		}
	}
	return NoMapping, -1, false
}

func mapHeader(row []string, syn HeaderSynonyms) ColumnMapping {
	m := NoMapping
	for col, cell := range row {
		key := strings.ToLower(normalize.CleanText(cell))
		if key == "" {
			continue
		}
		switch {
		case m.Date < 0 && headerMatches(key, syn.Date):
			m.Date = col
		case m.Narration < 0 && headerMatches(key, syn.Narration):
			m.Narration = col
		case m.Debit < 0 && headerMatches(key, syn.Debit):
			m.Debit = col
		case m.Credit < 0 && headerMatches(key, syn.Credit):
			m.Credit = col
		}
	}
	return m
}

func headerMatches(key string, synonyms []string) bool {
	for _, s := range synonyms {
		if strings.Contains(key, s) {
			return true
		}
	}
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == ' ' || r == '.' || r == '/' || r == '(' || r == ')'
	})
	for _, s := range synonyms {
		if len(s) < minFuzzyLen || strings.Contains(s, " ") {
			continue
		}
		for _, w := range words {
			if fuzzy.LevenshteinDistance(w, s) <= 1 {
				return true
			}
		}
	}
	return false
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
