package reference

import "strings"

// Author represents a paper author with optional ORCID identifier.
type Author struct {
	First string `json:"first" yaml:"first"`                     // First/given name(s)
	Last  string `json:"last" yaml:"last"`                       // Last/family name
	ORCID string `json:"orcid,omitempty" yaml:"orcid,omitempty"` // ORCID identifier (without URL prefix)
}

// FullName formats the author as "First Last".
func (a Author) FullName() string {
	if a.First != "" {
		return a.First + " " + a.Last
	}
	return a.Last
}

// ParseAuthor parses a single BibTeX-style name, either "Last, First" or
// "First Last". A braced group counts as one word, so "{Barnes and Noble}"
// stays a single last name. The braces themselves are dropped.
func ParseAuthor(name string) Author {
	if last, first, ok := strings.Cut(name, ","); ok {
		return Author{First: unbrace(first), Last: unbrace(last)}
	}
	words := braceFields(name)
	if len(words) <= 1 {
		return Author{Last: unbrace(name)}
	}
	first := make([]string, len(words)-1)
	for i, w := range words[:len(words)-1] {
		first[i] = unbrace(w)
	}
	return Author{
		First: strings.Join(first, " "),
		Last:  unbrace(words[len(words)-1]),
	}
}

var braceRemover = strings.NewReplacer("{", "", "}", "")

func unbrace(s string) string {
	return strings.Join(strings.Fields(braceRemover.Replace(s)), " ")
}

// braceFields splits s on whitespace outside braces.
func braceFields(s string) []string {
	var words []string
	depth, start := 0, -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case depth == 0 && (c == ' ' || c == '\t' || c == '\n' || c == '\r'):
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

// ParseAuthors splits a BibTeX author list on " and ".
func ParseAuthors(list string) []Author {
	var authors []Author
	for _, part := range splitAnd(list) {
		if part = strings.TrimSpace(part); part != "" {
			authors = append(authors, ParseAuthor(part))
		}
	}
	return authors
}

// splitAnd splits on the word "and" outside braces.
func splitAnd(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ' ', '\t', '\n':
			if depth == 0 && strings.HasPrefix(strings.ToLower(s[i+1:]), "and") {
				end := i + 4
				if end < len(s) && (s[end] == ' ' || s[end] == '\t' || s[end] == '\n') {
					parts = append(parts, s[start:i])
					start = end + 1
					i = end
				}
			}
		}
	}
	return append(parts, s[start:])
}
