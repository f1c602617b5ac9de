package citekey

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/matsen/papers/internal/reference"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackBase is used when an entry has neither authors nor a usable title.
const fallbackBase = "paper"

// Derive builds a base citekey in first-author-year style, e.g. "smith2020".
// Without authors the first significant title word stands in for the name.
func Derive(ref reference.Reference) string {
	name := ""
	if len(ref.Authors) > 0 {
		name = slug(ref.Authors[0].Last)
		if name == "" {
			name = slug(ref.Authors[0].First)
		}
	}
	if name == "" {
		name = firstTitleWord(ref.Title)
	}
	if name == "" {
		name = fallbackBase
	}

	if ref.Published.Year > 0 {
		return fmt.Sprintf("%s%d", name, ref.Published.Year)
	}
	return name
}

// slug lowercases s, strips diacritics and drops everything but a-z and 0-9.
func slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "on": true, "of": true, "in": true,
	"for": true, "and": true, "to": true, "with": true,
}

func firstTitleWord(title string) string {
	for _, word := range strings.Fields(title) {
		w := slug(word)
		if w != "" && !stopWords[w] {
			return w
		}
	}
	return ""
}
