// Package export renders stored papers in bibliography formats.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matsen/papers/internal/paper"
	"github.com/matsen/papers/internal/reference"
)

// ToBibTeX converts a paper to a BibTeX entry keyed by its citekey.
func ToBibTeX(p *paper.Paper) string {
	ref := p.Bib
	entryType := determineEntryType(ref)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, p.Citekey))

	// Authors
	if len(ref.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(ref.Authors)))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(ref.Title)))

	// Venue
	if ref.Venue != "" {
		fieldName := "journal"
		if entryType == "inproceedings" || entryType == "incollection" {
			fieldName = "booktitle"
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", fieldName, escapeLatex(ref.Venue)))
	}

	if ref.Published.Year > 0 {
		b.WriteString(fmt.Sprintf("  year = {%d},\n", ref.Published.Year))
	}
	if ref.Published.Month > 0 {
		b.WriteString(fmt.Sprintf("  month = {%d},\n", ref.Published.Month))
	}
	if ref.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", ref.DOI))
	}
	if ref.Abstract != "" {
		b.WriteString(fmt.Sprintf("  abstract = {%s},\n", escapeLatex(ref.Abstract)))
	}

	// Extra fields were read from BibTeX and are written back verbatim
	names := make([]string, 0, len(ref.Extra))
	for name := range ref.Extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", name, ref.Extra[name]))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts multiple papers to BibTeX format.
func ToBibTeXList(papers []*paper.Paper) string {
	var entries []string
	for _, p := range papers {
		entries = append(entries, ToBibTeX(p))
	}
	return strings.Join(entries, "\n")
}

// determineEntryType returns the declared entry type, or guesses one from
// the venue for entries imported without a type.
func determineEntryType(ref reference.Reference) string {
	if ref.Type != "" {
		return strings.ToLower(ref.Type)
	}

	venue := strings.ToLower(ref.Venue)

	// Conference proceedings
	if strings.Contains(venue, "proceedings") ||
		strings.Contains(venue, "conference") ||
		strings.Contains(venue, "workshop") ||
		strings.Contains(venue, "symposium") {
		return "inproceedings"
	}

	return reference.DefaultType
}

// formatAuthors formats authors in BibTeX style: "Last, First and Last, First"
func formatAuthors(authors []reference.Author) string {
	var formatted []string
	for _, a := range authors {
		if a.First != "" {
			formatted = append(formatted, fmt.Sprintf("%s, %s", a.Last, a.First))
		} else {
			formatted = append(formatted, a.Last)
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
