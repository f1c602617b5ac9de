// Package bibfile reads bibliographic metadata files: BibTeX (.bib),
// bibyaml (.bibyaml, .yaml, .yml) and Paperpile JSON exports (.json).
package bibfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/papers/internal/importer"
	"github.com/matsen/papers/internal/reference"
)

// Entry is one bibliographic entry with the citekey it was filed under.
// Citekey is empty when the source did not name one.
type Entry struct {
	Citekey string
	Ref     reference.Reference
}

// ErrNoEntries is returned when a file holds no entry at all.
var ErrNoEntries = errors.New("no bibliographic entries")

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported bibliography format")

// ParseFile reads every entry of a bibliographic file, choosing the reader
// from the file extension.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var entries []Entry
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".bib", ".bibtex":
		entries, err = ParseBibTeX(string(data))
	case ".bibyaml", ".yaml", ".yml":
		entries, err = ParseBibYAML(data)
	case ".json":
		entries, err = parsePaperpile(data)
	default:
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

func parsePaperpile(data []byte) ([]Entry, error) {
	imported, errs := importer.ParsePaperpile(data)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	entries := make([]Entry, len(imported))
	for i, imp := range imported {
		entries[i] = Entry{Citekey: imp.Citekey, Ref: imp.Ref}
	}
	return entries, nil
}

// Parser is the default bibliographic metadata parser of a repository.
type Parser struct{}

// ParseEntry reads a file that must contain exactly one entry.
func (Parser) ParseEntry(path string) (Entry, error) {
	entries, err := ParseFile(path)
	if err != nil {
		return Entry{}, err
	}
	switch len(entries) {
	case 0:
		return Entry{}, fmt.Errorf("%w in %s", ErrNoEntries, path)
	case 1:
		return entries[0], nil
	}
	return Entry{}, fmt.Errorf("%s holds %d entries, expected exactly one (use import for batches)", path, len(entries))
}

// ParseBatch reads all entries of a file.
func (Parser) ParseBatch(path string) ([]Entry, error) {
	return ParseFile(path)
}
