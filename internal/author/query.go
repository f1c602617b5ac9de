// Package author matches author name queries against paper authors.
package author

import (
	"strings"
	"unicode"

	"github.com/matsen/papers/internal/reference"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Query is a parsed author search query.
type Query struct {
	First string // First name (may be empty for last-name-only queries)
	Last  string // Last name (required)
}

// ParseQuery parses an author search string the way BibTeX names are read:
//   - "Yu"          → last="Yu"
//   - "Timothy Yu"  → first="Timothy", last="Yu"
//   - "Yu, Timothy" → first="Timothy", last="Yu"
func ParseQuery(input string) Query {
	if strings.TrimSpace(input) == "" {
		return Query{}
	}
	a := reference.ParseAuthor(input)
	return Query{First: a.First, Last: a.Last}
}

// ParseQueries parses every non-empty query string.
func ParseQueries(inputs []string) []Query {
	var queries []Query
	for _, in := range inputs {
		if q := ParseQuery(in); q.Last != "" {
			queries = append(queries, q)
		}
	}
	return queries
}

// Matches reports whether the query names author a. Last names must match
// exactly and first names by prefix, ignoring case and diacritics, so
// "Tim Yu" matches "Timothy C Yu" and "Erdos" matches "Erdős" while "Yu"
// does not match "Yujia".
func (q Query) Matches(a reference.Author) bool {
	if q.Last == "" || fold(q.Last) != fold(a.Last) {
		return false
	}
	if q.First == "" {
		return true
	}
	return strings.HasPrefix(fold(a.First), fold(q.First))
}

// MatchesAny reports whether the query names any of the authors.
func (q Query) MatchesAny(authors []reference.Author) bool {
	for _, a := range authors {
		if q.Matches(a) {
			return true
		}
	}
	return false
}

// AllMatch reports whether every query names at least one author.
func AllMatch(queries []Query, authors []reference.Author) bool {
	for _, q := range queries {
		if !q.MatchesAny(authors) {
			return false
		}
	}
	return true
}

// fold lowercases s and strips combining marks.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
