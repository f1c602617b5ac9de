package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/papers/internal/apperr"
	"github.com/matsen/papers/internal/bibfile"
	"github.com/matsen/papers/internal/config"
	"github.com/matsen/papers/internal/paper"
	"github.com/matsen/papers/internal/reference"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search results

	ListTitleMaxLen   = 60 // Used in list and search summaries
	DetailTitleMaxLen = 70 // Width of the rule under the get header

	TextWrapWidth       = 60 // Standard text wrap width
	DetailTextWrapWidth = 68 // Wider wrap for abstracts
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitForError exits with the code matching the kind of err.
func exitForError(err error, context string) {
	exitWithError(exitCodeFor(err), "%s: %v", context, err)
}

// exitCodeFor maps an error onto an exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, apperr.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, config.ErrNoRepository):
		return ExitConfigError
	case errors.Is(err, apperr.ErrCorruptIndex),
		errors.Is(err, apperr.ErrInvalidCitekey),
		errors.Is(err, apperr.ErrDuplicateCitekey),
		errors.Is(err, bibfile.ErrNoEntries),
		errors.Is(err, bibfile.ErrUnsupportedFormat):
		return ExitDataError
	}
	return ExitError
}

// silentExitError signals an exit code after the command already reported.
type silentExitError struct {
	code int
}

func (e silentExitError) Error() string {
	return ""
}

func exitErrorSilent(code int) error {
	return silentExitError{code: code}
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PaperResult is a paper together with its number.
type PaperResult struct {
	Number int `json:"number"`
	*paper.Paper
}

// printPaperSummary prints one line per paper: number, citekey, title, year.
func printPaperSummary(num int, p *paper.Paper) {
	fmt.Printf("[%d] %s\n", num, p.Citekey)
	fmt.Printf("    %s\n", truncateString(p.Bib.Title, ListTitleMaxLen))
	line := formatAuthorsShort(p.Bib.Authors, 3)
	if p.Bib.Published.Year > 0 {
		line = strings.TrimSpace(fmt.Sprintf("%s (%d)", line, p.Bib.Published.Year))
	}
	if len(p.Meta.Tags) > 0 {
		line = strings.TrimSpace(line + "  #" + strings.Join(p.Meta.Tags, " #"))
	}
	if line != "" {
		fmt.Printf("    %s\n", line)
	}
}

// printPaperDetail prints every field of a paper.
func printPaperDetail(num int, p *paper.Paper) {
	fmt.Printf("[%d] %s\n", num, p.Citekey)
	fmt.Println(strings.Repeat("=", DetailTitleMaxLen))
	fmt.Println()

	fmt.Printf("Title:    %s\n", wrapText(p.Bib.Title, TextWrapWidth, "          "))
	fmt.Println()

	if len(p.Bib.Authors) > 0 {
		fmt.Printf("Authors:  %s\n", wrapText(formatAuthorsFull(p.Bib.Authors), TextWrapWidth, "          "))
		fmt.Println()
	}

	fmt.Printf("Type:     %s\n", p.Bib.EntryType())
	if p.Bib.Venue != "" {
		fmt.Printf("Venue:    %s\n", p.Bib.Venue)
	}
	if date := formatDate(p.Bib.Published); date != "" {
		fmt.Printf("Date:     %s\n", date)
	}
	if p.Bib.DOI != "" {
		fmt.Printf("DOI:      %s\n", p.Bib.DOI)
	}
	if len(p.Meta.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(p.Meta.Tags, ", "))
	}
	if !p.Meta.Added.IsZero() {
		fmt.Printf("Added:    %s\n", p.Meta.Added.Format("2006-01-02"))
	}

	if p.Bib.Abstract != "" {
		fmt.Println()
		fmt.Println("Abstract:")
		fmt.Printf("  %s\n", wrapText(p.Bib.Abstract, DetailTextWrapWidth, "  "))
	}
	if p.Meta.Notes != "" {
		fmt.Println()
		fmt.Println("Notes:")
		fmt.Printf("  %s\n", wrapText(p.Meta.Notes, DetailTextWrapWidth, "  "))
	}
	if p.Meta.DocFile != "" {
		fmt.Println()
		fmt.Printf("Document: %s\n", p.Meta.DocFile)
	}
}

// formatDate formats a publication date as YYYY, YYYY-MM or YYYY-MM-DD.
func formatDate(d reference.PublicationDate) string {
	switch {
	case d.Year == 0:
		return ""
	case d.Month == 0:
		return fmt.Sprintf("%d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%d-%02d", d.Year, d.Month)
	}
	return fmt.Sprintf("%d-%02d-%02d", d.Year, d.Month, d.Day)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range strings.Fields(text) {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}

// formatAuthorsFull formats all authors as "First Last, First Last, ...".
func formatAuthorsFull(authors []reference.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.FullName()
	}
	return strings.Join(names, ", ")
}

// formatAuthorShort formats an author as "Last F" (abbreviated first name).
func formatAuthorShort(a reference.Author) string {
	if a.First != "" {
		return a.Last + " " + string([]rune(a.First)[0])
	}
	return a.Last
}

// formatAuthorsShort formats authors with abbreviation and "et al." for more than maxCount.
func formatAuthorsShort(authors []reference.Author, maxCount int) string {
	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, formatAuthorShort(a))
	}
	return strings.Join(names, ", ")
}
