package author

import (
	"testing"

	"github.com/matsen/papers/internal/reference"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Query
	}{
		{"single word is last name", "Yu", Query{Last: "Yu"}},
		{"two words is First Last", "Timothy Yu", Query{First: "Timothy", Last: "Yu"}},
		{"three words: first two are first name", "Timothy C Yu", Query{First: "Timothy C", Last: "Yu"}},
		{"comma format: Last, First", "Yu,  Timothy C", Query{First: "Timothy C", Last: "Yu"}},
		{"braced last name", "{van der Berg}, Jan", Query{First: "Jan", Last: "van der Berg"}},
		{"leading/trailing whitespace", "  Bloom  ", Query{Last: "Bloom"}},
		{"empty string", "", Query{}},
		{"whitespace only", "   ", Query{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseQuery(tt.input); got != tt.want {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestQueryMatches(t *testing.T) {
	tim := reference.Author{First: "Timothy C", Last: "Yu"}

	tests := []struct {
		name   string
		query  Query
		author reference.Author
		want   bool
	}{
		{"exact last name", Query{Last: "Yu"}, tim, true},
		{"case-insensitive last name", Query{Last: "yu"}, tim, true},
		{"last name is not a prefix match", Query{Last: "Yu"}, reference.Author{First: "Ann", Last: "Yujia"}, false},
		{"first name prefix", Query{First: "Tim", Last: "Yu"}, tim, true},
		{"first name mismatch", Query{First: "Tom", Last: "Yu"}, tim, false},
		{"diacritics ignored", Query{Last: "Erdos"}, reference.Author{First: "Paul", Last: "Erdős"}, true},
		{"diacritics ignored in first name", Query{First: "Emile", Last: "Durand"}, reference.Author{First: "Émile", Last: "Durand"}, true},
		{"empty query matches nothing", Query{}, tim, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Matches(tt.author); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllMatch(t *testing.T) {
	authors := []reference.Author{
		{First: "Timothy", Last: "Yu"},
		{First: "Jesse", Last: "Bloom"},
	}

	tests := []struct {
		name    string
		queries []string
		want    bool
	}{
		{"no queries", nil, true},
		{"one match", []string{"Bloom"}, true},
		{"both match", []string{"Bloom", "Tim Yu"}, true},
		{"one missing", []string{"Bloom", "Smith"}, false},
		{"blank query ignored", []string{"  ", "Yu"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllMatch(ParseQueries(tt.queries), authors); got != tt.want {
				t.Errorf("AllMatch(%v) = %v, want %v", tt.queries, got, tt.want)
			}
		})
	}
}
